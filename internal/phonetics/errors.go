package phonetics

import "fmt"

// UnknownSymbolError reports a symbol absent from the feature table.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown phonetic symbol %q", e.Symbol)
}
