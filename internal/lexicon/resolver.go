package lexicon

import (
	"fmt"
	"strings"
)

// MissingStressMarkerError reports a token that reached a stress-dependent
// rewrite without a stress marker.
type MissingStressMarkerError struct {
	Word string
	Rule string
}

func (e *MissingStressMarkerError) Error() string {
	return fmt.Sprintf("word %q has no stress marker (required by %s)", e.Word, e.Rule)
}

var (
	reflexiveExceptions = map[string]struct{}{"заботься": {}, "отметься": {}}

	// Clusters whose first letter is silent.
	firstSilent = []string{"лнц", "дц", "вств"}
	// Clusters whose second letter is silent.
	secondSilent = []string{"стн", "стл", "здн", "рдн", "нтск", "ндск", "лвств"}

	agentClusters = strings.NewReplacer("зч", "щ", "тч", "ч", "дч", "ч")
	hissingPairs  = [][2]string{{"сш", "шш"}, {"зш", "шш"}, {"сж", "жж"}, {"сч", "щ"}}
)

// Resolver applies the orthographic exception rules, in order, to a
// stressed token.
type Resolver struct {
	irregular *Irregular
	stemmer   Stemmer
}

// NewResolver builds a resolver. A nil irregular lexicon disables the
// lexicon rule.
func NewResolver(irregular *Irregular, stemmer Stemmer) *Resolver {
	return &Resolver{irregular: irregular, stemmer: stemmer}
}

// Resolve rewrites tok. Each rule sees the output of the previous one and
// the stress marker stays on the same vowel.
func (r *Resolver) Resolve(tok Token) (Token, error) {
	s := tok.Form()

	s, err := r.irregularWord(s)
	if err != nil {
		return Token{}, err
	}
	if s, err = adjectiveEnding(s); err != nil {
		return Token{}, err
	}
	s = strings.ReplaceAll(s, "что", "што")
	s = reflexiveEnding(s)
	s = nounEnding(s)
	s = silentClusters(s)
	s = r.hissingClusters(s)

	return NewToken(s), nil
}

func (r *Resolver) irregularWord(s string) (string, error) {
	if r.irregular == nil {
		return s, nil
	}
	pron, ok := r.irregular.Lookup(Plain(s))
	if !ok {
		return s, nil
	}
	if !strings.Contains(s, "+") {
		return "", &MissingStressMarkerError{Word: s, Rule: "irregular lexicon"}
	}
	return restress(s, pron), nil
}

func adjectiveEnding(s string) (string, error) {
	if s == "ого+" {
		return s, nil
	}
	plain := Plain(s)
	prefixed := strings.HasPrefix(plain, "какого")
	suffix := ""
	switch {
	case strings.HasSuffix(plain, "ого"):
		suffix = "ово"
	case strings.HasSuffix(plain, "его"):
		suffix = "ево"
	}
	if !prefixed && suffix == "" {
		return s, nil
	}
	offset := stressOffset(s)
	if offset < 0 {
		return "", &MissingStressMarkerError{Word: s, Rule: "adjective ending"}
	}
	if prefixed {
		plain = "каково" + strings.TrimPrefix(plain, "какого")
	}
	if suffix != "" {
		runes := []rune(plain)
		plain = string(runes[:len(runes)-3]) + suffix
	}
	return insertStress(plain, offset), nil
}

func reflexiveEnding(s string) string {
	if _, ok := reflexiveExceptions[Plain(s)]; ok {
		return s
	}
	if base, ok := strings.CutSuffix(s, "ться"); ok {
		return base + "ца"
	}
	if base, ok := strings.CutSuffix(s, "тся"); ok {
		return base + "ца"
	}
	return s
}

func nounEnding(s string) string {
	runes := []rune(s)
	n := len(runes)
	if n < 3 || runes[n-2] != 'и' {
		return s
	}
	last := runes[n-1]
	if last != 'я' && last != 'е' && last != 'ю' {
		return s
	}
	switch runes[n-3] {
	case 'ц', 'щ':
		return s
	case 'ж', 'ш':
		return string(runes[:n-2]) + "й" + string(last)
	default:
		return string(runes[:n-2]) + "ь" + string(last)
	}
}

func silentClusters(s string) string {
	for _, cluster := range firstSilent {
		runes := []rune(cluster)
		s = strings.ReplaceAll(s, cluster, string(runes[1:]))
	}
	for _, cluster := range secondSilent {
		runes := []rune(cluster)
		s = strings.ReplaceAll(s, cluster, string(runes[:1])+string(runes[2:]))
	}
	return s
}

func (r *Resolver) hissingClusters(s string) string {
	if strings.Contains(s, "зч") || strings.Contains(s, "тч") || strings.Contains(s, "дч") {
		stem := Plain(s)
		if r.stemmer != nil {
			stem = r.stemmer.Stem(stem)
		}
		if strings.HasSuffix(stem, "чик") || strings.HasSuffix(stem, "чиц") {
			s = agentClusters.Replace(s)
		}
	}
	for _, pair := range hissingPairs {
		s = strings.ReplaceAll(s, pair[0], pair[1])
	}
	return s
}
