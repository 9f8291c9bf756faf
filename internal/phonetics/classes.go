package phonetics

// Affricates and hissing sibilants that behave as one class for vowel
// reduction. The sets include labialized and velarized variants.
var (
	hushingOrTs = setOf(
		"ʐ", "ʐʷ", "ʐˠ", "ʑː", "ʑːʷ", "ʑːˠ", "ʑʲː", "ʑːᶣ",
		"ʂ", "ʂʷ", "ʂˠ", "ʂː", "ʂːʷ", "ʂːˠ",
		"t͡s", "t͡sʷ", "t͡sˠ", "d͡ʒᶣ", "d͡ʒˠ", "d̻͡z̪", "d͡ʒ",
	)
	affricateTs = setOf("t͡s", "t͡sʷ", "t͡sˠ", "d͡ʒᶣ", "d͡ʒˠ", "d̻͡z̪", "d͡ʒ")
)

// IsHushingOrTs reports ж, ш, ц and their realizations.
func IsHushingOrTs(symbol string) bool {
	_, ok := hushingOrTs[symbol]
	return ok
}

// IsTs reports ц-like affricates.
func IsTs(symbol string) bool {
	_, ok := affricateTs[symbol]
	return ok
}

func setOf(symbols ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		out[s] = struct{}{}
	}
	return out
}
