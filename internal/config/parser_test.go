package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEmptyContentReturnsBase(t *testing.T) {
	cfg, warnings, err := Parse("  \n", Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, Default(), cfg)
}

func TestParseRejectsNonObject(t *testing.T) {
	_, _, err := Parse("stress.place = before", Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1")
}

func TestParseLineNumberOnError(t *testing.T) {
	_, _, err := Parse("{\n\n  \"log\": oops\n}", Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 3")
}

func TestParseValidatesMergedConfig(t *testing.T) {
	_, _, err := Parse(`{"output": {"format": "xml"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "output.format")
}
