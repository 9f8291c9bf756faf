package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/rutranscript/internal/text"
)

func TestNormalizeJSONCRemovesCommentsAndTrailingCommas(t *testing.T) {
	input := `
{
  // line comment
  "items": [
    "one", /* block comment */
    "two",
  ],
  "nested": {
    "enabled": true,
  },
}
`

	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.NotContains(t, normalized, "//")
	require.NotContains(t, normalized, "/*")
	require.NotContains(t, normalized, ",]")
	require.NotContains(t, normalized, ",}")
}

func TestNormalizeJSONCRetainsCommentLikeTextInsideStrings(t *testing.T) {
	input := `{"value":"contains // and /* comment-like */ text",}`
	normalized, err := normalizeJSONC(input)
	require.NoError(t, err)
	require.Contains(t, normalized, "// and /* comment-like */")
}

func TestNormalizeJSONCUnterminatedBlockCommentFails(t *testing.T) {
	_, err := normalizeJSONC("{ /* unterminated ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated block comment")
}

func TestEnsureSingleJSONValueRejectsExtraPayload(t *testing.T) {
	decoder := json.NewDecoder(strings.NewReader(`{"one":1}{"two":2}`))
	var payload map[string]any
	require.NoError(t, decoder.Decode(&payload))

	err := ensureSingleJSONValue(decoder)
	require.Error(t, err)
	require.Contains(t, err.Error(), "multiple JSON values")
}

func TestOffsetToLineCol(t *testing.T) {
	content := "line1\nline2\nline3"
	line, col := offsetToLineCol(content, 1)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = offsetToLineCol(content, 8) // line2, col2
	require.Equal(t, 2, line)
	require.Equal(t, 2, col)

	line, col = offsetToLineCol(content, 999)
	require.Equal(t, 3, line)
	require.Equal(t, 5, col)
}

func TestJSONCStringListUnmarshal(t *testing.T) {
	var list jsoncStringList
	require.NoError(t, list.UnmarshalJSON([]byte(`["a","b"]`)))
	require.Equal(t, []string{"a", "b"}, []string(list))

	require.NoError(t, list.UnmarshalJSON([]byte(`"a, b, , c"`)))
	require.Equal(t, []string{"a", "b", "c"}, []string(list))

	err := list.UnmarshalJSON([]byte(`123`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected string array")
}

func TestParseJSONCAppliesAllSections(t *testing.T) {
	cfg, warnings, err := parseJSONC(`{
  // engine
  "stress": {"place": "Before", "symbol": "'"},
  "output": {"format": " YAML ", "save_stresses": true, "save_spaces": true, "save_pauses": true},
  "pipeline": {"workers": 4, "max_tokenize_attempts": 500},
  "lexicon": {"irregular_path": "/tmp/a.tsv, /tmp/b.tsv", "stresses_path": ["/tmp/s.txt"]},
  "server": {"grpc": " 127.0.0.1:6000 ", "socket": "/tmp/rt.sock"},
  "log": {"level": "DEBUG"},
  "replacements": {"TTS": " синтез речи "},
}`, Default())
	require.NoError(t, err)
	require.Empty(t, warnings)

	require.Equal(t, text.StressBefore, cfg.Stress.Place)
	require.Equal(t, "'", cfg.Stress.Symbol)
	require.Equal(t, OutputConfig{Format: "yaml", SaveStresses: true, SaveSpaces: true, SavePauses: true}, cfg.Output)
	require.Equal(t, PipelineConfig{Workers: 4, MaxTokenizeAttempts: 500}, cfg.Pipeline)
	require.Equal(t, []string{"/tmp/a.tsv", "/tmp/b.tsv"}, cfg.Lexicon.IrregularPaths)
	require.Equal(t, []string{"/tmp/s.txt"}, cfg.Lexicon.StressPaths)
	require.Equal(t, ServerConfig{GRPC: "127.0.0.1:6000", Socket: "/tmp/rt.sock"}, cfg.Server)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, map[string]string{"tts": "синтез речи"}, cfg.Replacements)
}

func TestParseJSONCRejectsInvalidStressPlace(t *testing.T) {
	_, _, err := parseJSONC(`{"stress":{"place":"middle"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "stress.place")
}

func TestParseJSONCRejectsEmptyReplacementKey(t *testing.T) {
	_, _, err := parseJSONC(`{"replacements":{" ":"x"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty key")
}

func TestParseJSONCWarnsOnMultiWordReplacementKey(t *testing.T) {
	_, warnings, err := parseJSONC(`{"replacements":{"два слова":"x"}}`, Default())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Message, "never match")
}

func TestParseJSONCDoesNotMutateBaseReplacements(t *testing.T) {
	base := Default()
	base.Replacements["мгу"] = "эм гэ у"

	cfg, _, err := parseJSONC(`{"replacements":{"tts":"синтез речи"}}`, base)
	require.NoError(t, err)
	require.Len(t, cfg.Replacements, 2)
	require.Len(t, base.Replacements, 1)
}

func TestParseJSONCRejectsUnknownField(t *testing.T) {
	_, _, err := parseJSONC(`{"riva":{"grpc":"x"}}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")
}

func TestParseJSONCRejectsMultipleTopLevelValues(t *testing.T) {
	_, _, err := parseJSONC(`{"log":{"level":"info"}}{"log":{"level":"warn"}}`, Default())
	require.Error(t, err)
	require.True(
		t,
		strings.Contains(err.Error(), "multiple JSON values") || strings.Contains(err.Error(), "unknown field"),
		"unexpected error: %v",
		err,
	)
}

func TestParseJSONCTypeErrorIncludesLocation(t *testing.T) {
	_, _, err := parseJSONC(`{
  "pipeline": {"workers": "many"}
}`, Default())
	require.Error(t, err)
	require.Contains(t, err.Error(), "line")
	require.Contains(t, err.Error(), "column")
}
