package server

// AnalyzeRequest carries the buffer before and after an insert edit.
type AnalyzeRequest struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// AnalyzeResponse describes the current buffer and whether the edit framed
// existing statements in an if.
type AnalyzeResponse struct {
	Tokens      []Token      `json:"tokens"`
	Found       bool         `json:"found"`
	Match       *Location    `json:"match,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

type Token struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
}

// Location is a half-open range given both in tokens and in bytes of the
// current source.
type Location struct {
	StartToken int `json:"startToken"`
	EndToken   int `json:"endToken"`
	StartByte  int `json:"startByte"`
	EndByte    int `json:"endByte"`
}

// Diagnostic reports why one of the inputs could not be analysed.
type Diagnostic struct {
	Input   string `json:"input"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Offset  int    `json:"offset"`
}
