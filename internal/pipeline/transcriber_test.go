package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/rutranscript/internal/lexicon"
	"github.com/rbright/rutranscript/internal/phonetics"
	"github.com/rbright/rutranscript/internal/rules"
	"github.com/rbright/rutranscript/internal/translit"
)

func section(stressed ...string) Section {
	tokens := make([]lexicon.Token, len(stressed))
	for i, s := range stressed {
		tokens[i] = lexicon.NewToken(s)
	}
	return Section{Tokens: tokens}
}

func newJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}

func bare(seq []string) []string {
	return Render([][]string{seq}, nil, RenderOptions{})
}

func TestTransformScenarios(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	tests := []struct {
		name    string
		section Section
		want    []string
	}{
		{
			name:    "stress supplied separately",
			section: Section{Tokens: []lexicon.Token{{Word: "нос", Stressed: "но+с"}}},
			want:    []string{"nʷ", "o", "s"},
		},
		{
			name:    "initial yo",
			section: section("ё+лка"),
			want:    []string{"ʝᶣ", "ɵ", "l", "k", "ʌ"},
		},
		{
			name:    "rhotic devoicing",
			section: section("а+рфа"),
			want:    []string{"a", "r̥", "f", "ʌ"},
		},
		{
			name:    "labialized affricate",
			section: section("джу+нгли"),
			want:    []string{"d͡ʒᶣ", "ʉ", "n", "ɡ", "lʲ", "ɪ"},
		},
		{
			name:    "affricate voicing",
			section: section("плацда+рм"),
			want:    []string{"p", "l", "ɐ", "d̻͡z̪", "d", "a", "r", "m"},
		},
		{
			name:    "phrase",
			section: section("ка+к", "получи+ть", "транскри+пцию"),
			want: []string{
				"k", "a", "k", "p", "ə", "lʷ", "ʊ", "t͡ɕ", "i", "tʲ", "t", "r", "ɐ", "n", "s", "k", "rʲ",
				"i", "p", "t͡sˠ", "ɨ", "jᶣ", "ᵿ",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tr.Transform(tc.section)
			require.NoError(t, err)
			require.Equal(t, tc.want, bare(result.Allophones))
		})
	}
}

func TestTransformKeepsPhonemeLayer(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	result, err := tr.Transform(section("ё+лка"))
	require.NoError(t, err)
	require.Equal(t, []string{"j", "o", "+", "l", "k", "a"}, result.Phonemes)
	require.Equal(t, []string{"ʝᶣ", "ɵ", "+", "l", "k", "ʌ"}, result.Allophones)
}

func TestTransformMergesClitics(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	sec := section("ко+шка", "и+", "соба+ка")
	sec.Clitics = append(sec.Clitics, rules.CliticRelation{Main: 2, Clitic: 1})

	result, err := tr.Transform(sec)
	require.NoError(t, err)
	require.Equal(t,
		[]string{"kʷ", "o", "+", "ʂ", "k", "ʌ", "_", "i", "s", "ɐ", "-", "b", "a", "+", "k", "ʌ"},
		result.Allophones)
	require.Equal(t,
		[]string{"k", "o", "+", "ʂ", "k", "a", "_", "i", "+", "_", "s", "o", "b", "a", "+", "k", "a"},
		result.Phonemes)
}

func TestTransformIsDeterministic(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	sec := section("ка+к", "получи+ть", "транскри+пцию")

	first, err := tr.Transform(sec)
	require.NoError(t, err)
	second, err := tr.Transform(sec)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTransformConservesStress(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	result, err := tr.Transform(section("ка+к", "получи+ть", "транскри+пцию"))
	require.NoError(t, err)

	stresses := 0
	for _, symbol := range result.Allophones {
		if symbol == phonetics.Stress {
			stresses++
		}
	}
	require.Equal(t, 3, stresses)
}

func TestTransformOutputResolvesInTable(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{}, nil)
	words := []string{
		"ё+лка", "для", "её+", "ё+жика", "пё+рышка", "подвё+л", "конё+к", "мё+д",
		"сча+стье", "мы+шь", "подъе+зд", "со+лнце", "сего+дня", "ага+", "джа+з",
	}
	for _, word := range words {
		result, err := tr.Transform(section(word))
		require.NoError(t, err, word)
		for _, symbol := range result.Allophones {
			_, err := tr.Table().Resolve(symbol)
			require.NoError(t, err, "%s in %s", symbol, word)
		}
	}
}

func TestTransformKeepsSibilantAfterTs(t *testing.T) {
	t.Parallel()

	result, err := NewTranscriber(Options{}, nil).Transform(section("отцсове+товал"))
	require.NoError(t, err)
	require.Equal(t, []string{"o", "t", "t͡s", "s"}, result.Phonemes[:4])
}

func TestTransformEmptySection(t *testing.T) {
	t.Parallel()

	result, err := NewTranscriber(Options{}, nil).Transform(Section{})
	require.NoError(t, err)
	require.Empty(t, result.Allophones)
}

func TestTransformReportsTokenizationError(t *testing.T) {
	t.Parallel()

	_, err := NewTranscriber(Options{}, nil).Transform(section("до+м7"))
	require.Error(t, err)

	var tokErr *translit.TokenizationError
	require.ErrorAs(t, err, &tokErr)
	require.Equal(t, 4, tokErr.Position)
}

func TestTransformReportsMissingStress(t *testing.T) {
	t.Parallel()

	_, err := NewTranscriber(Options{}, nil).Transform(section("красного"))

	var missing *lexicon.MissingStressMarkerError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "красного", missing.Word)
}

func TestTransformHonorsTokenizeBudget(t *testing.T) {
	t.Parallel()

	tr := NewTranscriber(Options{MaxTokenizeAttempts: 2}, nil)
	_, err := tr.Transform(section("плацда+рм"))

	var tokErr *translit.TokenizationError
	require.ErrorAs(t, err, &tokErr)
	require.Contains(t, tokErr.Error(), "budget")
}

func TestNewTranscriberLogsThroughGivenLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := NewTranscriber(Options{Workers: 1}, newJSONLogger(&buf))

	sec := section("до+м")
	sec.Clitics = append(sec.Clitics, rules.CliticRelation{Main: 0, Clitic: 4})
	_, err := tr.Transform(sec)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "skipping clitic relation")

	batch := tr.Process(context.Background(), []Section{section("до+м7")})
	require.Len(t, batch.Errors, 1)
	require.Contains(t, buf.String(), "section failed")
}

func TestTranscriberStats(t *testing.T) {
	t.Parallel()

	stats := NewTranscriber(Options{Workers: 3}, nil).Stats()
	require.Equal(t, 3, stats.Workers)
	require.Positive(t, stats.Symbols)
	require.Positive(t, stats.Irregular)
	require.Positive(t, stats.Stresses)
}
