package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateWarnsOnConflictingStressSymbol(t *testing.T) {
	cfg := Default()
	cfg.Stress.Symbol = "ː"

	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "stress.symbol")
}

func TestValidateRejectsInvalidCoreFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad stress place", mutate: func(c *Config) { c.Stress.Place = "middle" }, wantErr: "stress.place"},
		{name: "empty stress symbol", mutate: func(c *Config) { c.Stress.Symbol = "" }, wantErr: "stress.symbol"},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "negative workers", mutate: func(c *Config) { c.Pipeline.Workers = -1 }, wantErr: "pipeline.workers"},
		{name: "negative attempts", mutate: func(c *Config) { c.Pipeline.MaxTokenizeAttempts = -1 }, wantErr: "max_tokenize_attempts"},
		{name: "empty grpc", mutate: func(c *Config) { c.Server.GRPC = " " }, wantErr: "server.grpc"},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
