package translit

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rbright/rutranscript/internal/phonetics"
)

func TestLettersMergesSignsAndDzh(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"о", "бъ", "я", "+", "в"}, Letters("объя+в"))
	require.Equal(t, []string{"дж", "у", "+", "н"}, Letters("джу+н"))
	require.Equal(t, []string{"т", "е", "+", "чь"}, Letters("те+чь"))
}

func TestSectionLettersInsertsBoundaries(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"в", "о", "+", "т", "_", "т", "а", "+", "к"}, SectionLetters([]string{"во+т", "та+к"}))
}

func TestTransliterate(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"но+с":     "no+s",
		"ё+лка":    "o+lka",
		"джу+нгли": "d͡ʒu+nɡli",
		"те+чь":    "te+t͡ɕʲ",
		"объя+вле": "oba+vle",
		"щего+л":   "ɕːeɡo+l",
		"ша+хта":   "ʂa+xta",
		"мышь":     "mɨʂʲ",
	}
	for word, want := range tests {
		require.Equal(t, want, Transliterate(word), word)
	}
}

func TestUnitKeepsUnknownCharacters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "q", Unit("q"))
	require.Equal(t, "", Unit("ъ"))
	require.Equal(t, "lʲ", Unit("ль"))
	require.Equal(t, "b", Unit("бъ"))
}

func TestTokenizeSplitsLongestSymbols(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(phonetics.Default(), 0)
	got, err := tok.Tokenize([]string{Transliterate("ве+щдок"), Transliterate("те+чь")})
	require.NoError(t, err)
	require.Equal(t, []string{"v", "e", "+", "ɕː", "d", "o", "k", "_", "t", "e", "+", "t͡ɕ"}, got)
}

func TestTokenizeKeepsSoftConsonants(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(phonetics.Default(), 0)
	got, err := tok.Tokenize([]string{Transliterate("пя+ть")})
	require.NoError(t, err)
	require.Equal(t, []string{"p", "a", "+", "tʲ"}, got)
}

func TestTokenizeKeepsConsonantAfterAffricate(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(phonetics.Default(), 0)
	got, err := tok.Tokenize([]string{Transliterate("отцсове+т"), Transliterate("джжа")})
	require.NoError(t, err)
	require.Equal(t, []string{"o", "t", "t͡s", "s", "o", "v", "e", "+", "t", "_", "d͡ʒ", "ʐ", "a"}, got)
	require.Len(t, Letters("отцсове+т"), 9)
}

func TestTokenizeReportsUnmatchedPosition(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(phonetics.Default(), 0)
	_, err := tok.Tokenize([]string{"no+s", "daQ"})
	var tokErr *TokenizationError
	require.True(t, errors.As(err, &tokErr))
	require.Equal(t, "daQ", tokErr.Token)
	require.Equal(t, 2, tokErr.Position)
}

func TestTokenizeAttemptBudget(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(phonetics.Default(), 2)
	_, err := tok.Tokenize([]string{"dom"})
	var tokErr *TokenizationError
	require.True(t, errors.As(err, &tokErr))
	require.Contains(t, tokErr.Error(), "attempt budget")
}

func TestTokenizeBudgetCountsOnlyMisses(t *testing.T) {
	t.Parallel()

	// dom misses on "dom", "do" and "om"; the three hits are free.
	got, err := NewTokenizer(phonetics.Default(), 3).Tokenize([]string{"dom"})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "o", "m"}, got)
}

func TestIsVowelLetter(t *testing.T) {
	t.Parallel()

	require.True(t, IsVowelLetter('ё'))
	require.False(t, IsVowelLetter('й'))
	require.True(t, EndsWithSign("бъ"))
	require.False(t, EndsWithSign("б"))
}

func TestSymbolsResolveInDefaultTable(t *testing.T) {
	t.Parallel()

	table := phonetics.Default()
	symbols := Symbols()
	require.Contains(t, symbols, "d͡ʒ")
	require.Contains(t, symbols, "ɕː")
	require.True(t, slices.IsSorted(symbols))
	for _, symbol := range symbols {
		require.True(t, table.Has(symbol), symbol)
	}
}
