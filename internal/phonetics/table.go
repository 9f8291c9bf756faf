package phonetics

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

var (
	//go:embed data/inventory.txt
	inventoryData string
	//go:embed data/groups.txt
	groupsData string
	//go:embed data/pairs.txt
	pairsData string
)

var structural = []string{Stress, Prestress, Space, ShortPause, LongPause}

// Table maps every known symbol to its Feature. A Table is read-only after
// Load and safe for concurrent use.
type Table struct {
	features map[string]Feature
	symbols  []string
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table built from the embedded data.
func Default() *Table {
	defaultOnce.Do(func() {
		table, err := Load(
			strings.NewReader(inventoryData),
			strings.NewReader(groupsData),
			strings.NewReader(pairsData),
		)
		if err != nil {
			panic(fmt.Sprintf("phonetics: embedded tables are invalid: %v", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// Load builds a table from an inventory list ("a, b, c"), group lines
// ("group = a, b") and voicing pairs ("(b, p), (d, t)").
func Load(inventory, groups, pairs io.Reader) (*Table, error) {
	symbols, err := readInventory(inventory)
	if err != nil {
		return nil, err
	}
	membership, members, err := readGroups(groups)
	if err != nil {
		return nil, err
	}

	t := &Table{features: make(map[string]Feature, len(symbols)+len(structural)+1)}
	for _, symbol := range symbols {
		if _, dup := t.features[symbol]; dup {
			return nil, fmt.Errorf("inventory: duplicate symbol %q", symbol)
		}
		f, err := buildFeature(symbol, membership[symbol])
		if err != nil {
			return nil, err
		}
		t.features[symbol] = f
		t.symbols = append(t.symbols, symbol)
	}
	for group, list := range members {
		for _, symbol := range list {
			if _, ok := t.features[symbol]; !ok {
				return nil, fmt.Errorf("groups: %s lists unknown symbol %q", group, symbol)
			}
		}
	}

	if err := t.applyPairs(pairs); err != nil {
		return nil, err
	}

	for _, symbol := range structural {
		t.features[symbol] = Feature{Symbol: symbol, Kind: KindSymbol}
	}
	t.features[""] = Feature{Kind: KindNone}
	return t, nil
}

// Lookup returns the feature for symbol. It never fails: the empty symbol
// yields the KindNone record used at sequence edges, and symbols outside
// the inventory yield a bare KindSymbol record.
func (t *Table) Lookup(symbol string) Feature {
	if f, ok := t.features[symbol]; ok {
		return f
	}
	return Feature{Symbol: symbol, Kind: KindSymbol}
}

// Resolve is the strict form of Lookup.
func (t *Table) Resolve(symbol string) (Feature, error) {
	if f, ok := t.features[symbol]; ok {
		return f, nil
	}
	return Feature{}, &UnknownSymbolError{Symbol: symbol}
}

// Has reports whether symbol is a sound of the inventory.
func (t *Table) Has(symbol string) bool {
	f, ok := t.features[symbol]
	return ok && (f.IsVowel() || f.IsConsonant())
}

// Symbols returns the sound inventory in data order.
func (t *Table) Symbols() []string {
	return slices.Clone(t.symbols)
}

func readInventory(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var symbols []string
	for _, field := range strings.Split(string(raw), ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			symbols = append(symbols, field)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("inventory: no symbols")
	}
	return symbols, nil
}

// readGroups returns symbol -> group names and group -> symbols.
func readGroups(r io.Reader) (map[string][]string, map[string][]string, error) {
	membership := map[string][]string{}
	groups := map[string][]string{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, list, ok := strings.Cut(line, " = ")
		if !ok {
			return nil, nil, fmt.Errorf("groups line %d: expected \"group = a, b\"", lineNo)
		}
		name = strings.TrimSpace(name)
		if _, known := groupSetters[name]; !known {
			return nil, nil, fmt.Errorf("groups line %d: unknown group %q", lineNo, name)
		}
		for _, symbol := range strings.Split(list, ",") {
			symbol = strings.TrimSpace(symbol)
			if symbol == "" {
				continue
			}
			membership[symbol] = append(membership[symbol], name)
			groups[name] = append(groups[name], symbol)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read groups: %w", err)
	}
	return membership, groups, nil
}

func (t *Table) applyPairs(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read pairs: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	for _, chunk := range strings.Split(text, "),") {
		chunk = strings.Trim(strings.TrimSpace(chunk), "()")
		voiced, voiceless, ok := strings.Cut(chunk, ",")
		if !ok {
			return fmt.Errorf("pairs: malformed entry %q", chunk)
		}
		voiced, voiceless = strings.TrimSpace(voiced), strings.TrimSpace(voiceless)

		v, vok := t.features[voiced]
		u, uok := t.features[voiceless]
		if !vok || !uok {
			return fmt.Errorf("pairs: (%s, %s) references unknown symbol", voiced, voiceless)
		}
		if v.Voice != Voiced || u.Voice != Voiceless {
			return fmt.Errorf("pairs: (%s, %s) must be (voiced, voiceless)", voiced, voiceless)
		}
		v.Pair, u.Pair = voiceless, voiced
		t.features[voiced], t.features[voiceless] = v, u
	}
	return nil
}

var groupSetters = map[string]func(*Feature){
	"vowel":     func(f *Feature) { f.Kind = KindVowel },
	"consonant": func(f *Feature) { f.Kind = KindConsonant },

	"front":      func(f *Feature) { f.Row = RowFront },
	"near_front": func(f *Feature) { f.Row = RowNearFront },
	"central":    func(f *Feature) { f.Row = RowCentral },
	"near_back":  func(f *Feature) { f.Row = RowNearBack },
	"back":       func(f *Feature) { f.Row = RowBack },

	"close":      func(f *Feature) { f.Rise = RiseClose },
	"near_close": func(f *Feature) { f.Rise = RiseNearClose },
	"close_mid":  func(f *Feature) { f.Rise = RiseCloseMid },
	"mid":        func(f *Feature) { f.Rise = RiseMid },
	"open_mid":   func(f *Feature) { f.Rise = RiseOpenMid },
	"near_open":  func(f *Feature) { f.Rise = RiseNearOpen },
	"open":       func(f *Feature) { f.Rise = RiseOpen },

	"round":    func(f *Feature) { f.Rounding = RoundingRound },
	"velarize": func(f *Feature) { f.Rounding = RoundingVelarize },

	"bilabial":       func(f *Feature) { f.Place = PlaceBilabial },
	"labiodental":    func(f *Feature) { f.Place = PlaceLabiodental },
	"dental":         func(f *Feature) { f.Place = PlaceDental },
	"palatinodental": func(f *Feature) { f.Place = PlacePalatinodental },
	"palatal":        func(f *Feature) { f.Place = PlacePalatal },
	"velar":          func(f *Feature) { f.Place = PlaceVelar },
	"glottal":        func(f *Feature) { f.Place = PlaceGlottal },

	"explosive":   func(f *Feature) { f.Manner = MannerExplosive },
	"affricate":   func(f *Feature) { f.Manner = MannerAffricate },
	"fricative":   func(f *Feature) { f.Manner = MannerFricative },
	"nasal":       func(f *Feature) { f.Manner = MannerNasal },
	"lateral":     func(f *Feature) { f.Manner = MannerLateral },
	"vibrant":     func(f *Feature) { f.Manner = MannerVibrant },
	"approximant": func(f *Feature) { f.Manner = MannerApproximant },

	"hard":        func(f *Feature) { f.Palatalization = Hard },
	"always_hard": func(f *Feature) { f.Palatalization = AlwaysHard },
	"soft":        func(f *Feature) { f.Palatalization = Soft },
	"always_soft": func(f *Feature) { f.Palatalization = AlwaysSoft },

	"voiced":    func(f *Feature) { f.Voice = Voiced },
	"voiceless": func(f *Feature) { f.Voice = Voiceless },
	"hissing":   func(f *Feature) { f.Hissing = true },
}

func buildFeature(symbol string, groups []string) (Feature, error) {
	f := Feature{Symbol: symbol}
	for _, group := range groups {
		groupSetters[group](&f)
	}
	switch f.Kind {
	case KindVowel:
		if f.Place != PlaceUnset || f.Voice != VoiceNone {
			return Feature{}, fmt.Errorf("groups: vowel %q has consonant features", symbol)
		}
	case KindConsonant:
		if f.Place == PlaceUnset || f.Manner == MannerUnset || f.Palatalization == PalatalizationUnset {
			return Feature{}, fmt.Errorf("groups: consonant %q lacks place, manner or hardness", symbol)
		}
	default:
		return Feature{}, fmt.Errorf("groups: %q is neither vowel nor consonant", symbol)
	}
	return f, nil
}
