package ipc

// Request is one JSON line sent to the socket. Transcribe fields are
// ignored by status.
type Request struct {
	Command      string `json:"command"`
	Text         string `json:"text,omitempty"`
	StressedText string `json:"stressed_text,omitempty"`
	StressPlace  string `json:"stress_place,omitempty"`
	StressSymbol string `json:"stress_symbol,omitempty"`
	SaveStresses bool   `json:"save_stresses,omitempty"`
	SaveSpaces   bool   `json:"save_spaces,omitempty"`
	SavePauses   bool   `json:"save_pauses,omitempty"`
}

type Response struct {
	OK           bool     `json:"ok"`
	State        string   `json:"state,omitempty"`
	Message      string   `json:"message,omitempty"`
	Error        string   `json:"error,omitempty"`
	Allophones   []string `json:"allophones,omitempty"`
	Phonemes     []string `json:"phonemes,omitempty"`
	StressedText string   `json:"stressed_text,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}
