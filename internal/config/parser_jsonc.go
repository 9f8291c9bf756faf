package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rbright/rutranscript/internal/text"
)

type jsoncConfig struct {
	Stress       *jsoncStress      `json:"stress"`
	Output       *jsoncOutput      `json:"output"`
	Pipeline     *jsoncPipeline    `json:"pipeline"`
	Lexicon      *jsoncLexicon     `json:"lexicon"`
	Server       *jsoncServer      `json:"server"`
	Log          *jsoncLog         `json:"log"`
	Replacements map[string]string `json:"replacements"`
}

type jsoncStress struct {
	Place  *string `json:"place"`
	Symbol *string `json:"symbol"`
}

type jsoncOutput struct {
	Format       *string `json:"format"`
	SaveStresses *bool   `json:"save_stresses"`
	SaveSpaces   *bool   `json:"save_spaces"`
	SavePauses   *bool   `json:"save_pauses"`
}

type jsoncPipeline struct {
	Workers             *int `json:"workers"`
	MaxTokenizeAttempts *int `json:"max_tokenize_attempts"`
}

type jsoncLexicon struct {
	IrregularPath *jsoncStringList `json:"irregular_path"`
	StressesPath  *jsoncStringList `json:"stresses_path"`
}

type jsoncServer struct {
	GRPC   *string `json:"grpc"`
	Socket *string `json:"socket"`
}

type jsoncLog struct {
	Level *string `json:"level"`
}

type jsoncStringList []string

func (l *jsoncStringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		parts := strings.Split(single, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
		*l = out
		return nil
	}

	return fmt.Errorf("expected string array or comma-delimited string")
}

func parseJSONC(content string, base Config) (Config, []Warning, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	warnings, err := payload.applyTo(&cfg)
	if err != nil {
		return Config{}, nil, err
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validatedWarnings...)
	return cfg, warnings, nil
}

func (payload jsoncConfig) applyTo(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if payload.Stress != nil {
		if payload.Stress.Place != nil {
			place, err := text.ParseStressPlace(*payload.Stress.Place)
			if err != nil {
				return nil, fmt.Errorf("stress.place: %w", err)
			}
			cfg.Stress.Place = place
		}
		if payload.Stress.Symbol != nil {
			cfg.Stress.Symbol = strings.TrimSpace(*payload.Stress.Symbol)
		}
	}

	if payload.Output != nil {
		if payload.Output.Format != nil {
			cfg.Output.Format = strings.ToLower(strings.TrimSpace(*payload.Output.Format))
		}
		if payload.Output.SaveStresses != nil {
			cfg.Output.SaveStresses = *payload.Output.SaveStresses
		}
		if payload.Output.SaveSpaces != nil {
			cfg.Output.SaveSpaces = *payload.Output.SaveSpaces
		}
		if payload.Output.SavePauses != nil {
			cfg.Output.SavePauses = *payload.Output.SavePauses
		}
	}

	if payload.Pipeline != nil {
		if payload.Pipeline.Workers != nil {
			cfg.Pipeline.Workers = *payload.Pipeline.Workers
		}
		if payload.Pipeline.MaxTokenizeAttempts != nil {
			cfg.Pipeline.MaxTokenizeAttempts = *payload.Pipeline.MaxTokenizeAttempts
		}
	}

	if payload.Lexicon != nil {
		if payload.Lexicon.IrregularPath != nil {
			cfg.Lexicon.IrregularPaths = trimmedList(*payload.Lexicon.IrregularPath)
		}
		if payload.Lexicon.StressesPath != nil {
			cfg.Lexicon.StressPaths = trimmedList(*payload.Lexicon.StressesPath)
		}
	}

	if payload.Server != nil {
		if payload.Server.GRPC != nil {
			cfg.Server.GRPC = strings.TrimSpace(*payload.Server.GRPC)
		}
		if payload.Server.Socket != nil {
			cfg.Server.Socket = strings.TrimSpace(*payload.Server.Socket)
		}
	}

	if payload.Log != nil && payload.Log.Level != nil {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*payload.Log.Level))
	}

	if payload.Replacements != nil {
		replacements := make(map[string]string, len(cfg.Replacements)+len(payload.Replacements))
		for from, to := range cfg.Replacements {
			replacements[from] = to
		}
		for from, to := range payload.Replacements {
			from = strings.ToLower(strings.TrimSpace(from))
			if from == "" {
				return nil, fmt.Errorf("replacements contains an empty key")
			}
			if strings.ContainsAny(from, " \t") {
				warnings = append(warnings, Warning{Message: fmt.Sprintf("replacement key %q spans several words and will never match", from)})
			}
			replacements[from] = strings.TrimSpace(to)
		}
		cfg.Replacements = replacements
	}

	return warnings, nil
}

func trimmedList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeJSONC(content string) (string, error) {
	withoutComments, err := stripJSONCComments(content)
	if err != nil {
		return "", err
	}
	return stripJSONCTrailingCommas(withoutComments), nil
}

func stripJSONCComments(content string) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	inString := false
	escape := false
	lineComment := false
	blockComment := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if lineComment {
			if ch == '\n' {
				lineComment = false
				out.WriteByte(ch)
				continue
			}
			if ch == '\r' {
				lineComment = false
				out.WriteByte(ch)
				continue
			}
			out.WriteByte(' ')
			continue
		}

		if blockComment {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				blockComment = false
				out.WriteString("  ")
				i++
				continue
			}
			if ch == '\n' || ch == '\r' || ch == '\t' {
				out.WriteByte(ch)
			} else {
				out.WriteByte(' ')
			}
			continue
		}

		if inString {
			out.WriteByte(ch)
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			continue
		}

		if ch == '/' && i+1 < len(content) {
			next := content[i+1]
			if next == '/' {
				lineComment = true
				out.WriteString("  ")
				i++
				continue
			}
			if next == '*' {
				blockComment = true
				out.WriteString("  ")
				i++
				continue
			}
		}

		out.WriteByte(ch)
	}

	if blockComment {
		return "", fmt.Errorf("unterminated block comment in JSONC")
	}

	return out.String(), nil
}

func stripJSONCTrailingCommas(content string) string {
	var out strings.Builder
	out.Grow(len(content))

	inString := false
	escape := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			out.WriteByte(ch)
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			continue
		}

		if ch == ',' {
			j := i + 1
			for j < len(content) && isJSONWhitespace(content[j]) {
				j++
			}
			if j < len(content) && (content[j] == '}' || content[j] == ']') {
				continue
			}
		}

		out.WriteByte(ch)
	}

	return out.String()
}

func isJSONWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\n', '\r', '\t':
		return true
	default:
		return false
	}
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
