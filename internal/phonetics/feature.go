// Package phonetics holds the static articulatory feature table for the
// Russian phoneme and allophone inventory.
package phonetics

// Structural markers that share the phoneme stream with real sounds.
const (
	Stress      = "+"
	Prestress   = "-"
	Space       = "_"
	ShortPause  = "|"
	LongPause   = "||"
	Palatalized = "ʲ"
)

// Kind discriminates the Feature union.
type Kind uint8

const (
	KindNone Kind = iota
	KindSymbol
	KindVowel
	KindConsonant
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindVowel:
		return "vowel"
	case KindConsonant:
		return "consonant"
	default:
		return "none"
	}
}

// Row is vowel horizontal position.
type Row uint8

const (
	RowUnset Row = iota
	RowFront
	RowNearFront
	RowCentral
	RowNearBack
	RowBack
)

// Rise is vowel height.
type Rise uint8

const (
	RiseUnset Rise = iota
	RiseClose
	RiseNearClose
	RiseCloseMid
	RiseMid
	RiseOpenMid
	RiseNearOpen
	RiseOpen
)

// Rounding is the secondary articulation a vowel spreads to the preceding
// consonant.
type Rounding uint8

const (
	RoundingNone Rounding = iota
	RoundingRound
	RoundingVelarize
)

// Place is the consonant place of articulation. Bilabial and Labiodental
// form the labial class, Dental through Velar the lingual class.
type Place uint8

const (
	PlaceUnset Place = iota
	PlaceBilabial
	PlaceLabiodental
	PlaceDental
	PlacePalatinodental
	PlacePalatal
	PlaceVelar
	PlaceGlottal
)

// IsLabial reports whether p belongs to the labial class.
func (p Place) IsLabial() bool {
	return p == PlaceBilabial || p == PlaceLabiodental
}

// IsLingual reports whether p belongs to the lingual class.
func (p Place) IsLingual() bool {
	return p >= PlaceDental && p <= PlaceVelar
}

func (p Place) String() string {
	switch p {
	case PlaceBilabial:
		return "labial, bilabial"
	case PlaceLabiodental:
		return "labial, labiodental"
	case PlaceDental:
		return "lingual, dental"
	case PlacePalatinodental:
		return "lingual, palatinodental"
	case PlacePalatal:
		return "lingual, palatal"
	case PlaceVelar:
		return "lingual, velar"
	case PlaceGlottal:
		return "glottal"
	default:
		return ""
	}
}

// Manner is the consonant manner of articulation.
type Manner uint8

const (
	MannerUnset Manner = iota
	MannerExplosive
	MannerAffricate
	MannerFricative
	MannerNasal
	MannerLateral
	MannerVibrant
	MannerApproximant
)

// IsSonorant reports whether m is a sonorant manner.
func (m Manner) IsSonorant() bool {
	return m >= MannerNasal
}

// Palatalization is the consonant hardness class.
type Palatalization uint8

const (
	PalatalizationUnset Palatalization = iota
	Hard
	AlwaysHard
	Soft
	AlwaysSoft
)

// IsHard reports hard or always-hard.
func (p Palatalization) IsHard() bool {
	return p == Hard || p == AlwaysHard
}

// IsSoft reports soft or always-soft.
func (p Palatalization) IsSoft() bool {
	return p == Soft || p == AlwaysSoft
}

// IsAlways reports consonants whose hardness never changes.
func (p Palatalization) IsAlways() bool {
	return p == AlwaysHard || p == AlwaysSoft
}

// Voice is consonant voicing. Sonorants are voiced.
type Voice uint8

const (
	VoiceNone Voice = iota
	Voiced
	Voiceless
)

// Feature is the immutable feature record for one symbol. Only the fields
// matching Kind are meaningful.
type Feature struct {
	Symbol string
	Kind   Kind

	Row      Row
	Rise     Rise
	Rounding Rounding

	Place          Place
	Manner         Manner
	Palatalization Palatalization
	Voice          Voice
	Hissing        bool
	// Pair is the opposite-voicing counterpart, empty when unpaired.
	Pair string
}

func (f Feature) IsVowel() bool { return f.Kind == KindVowel }

func (f Feature) IsConsonant() bool { return f.Kind == KindConsonant }

// IsStructural reports markers and edge placeholders, which rules skip over
// when looking for the next real sound.
func (f Feature) IsStructural() bool {
	return f.Kind == KindSymbol || f.Kind == KindNone
}

func (f Feature) IsVoiced() bool { return f.Voice == Voiced }

func (f Feature) IsVoiceless() bool { return f.Voice == Voiceless }
