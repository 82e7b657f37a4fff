package handlers

import (
	"net/http"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	ID       string `json:"id,omitempty"`
	Sequence string `json:"sequence"`
}

// EncodeResponse represents the response for sequence encoding. Code 0 is
// reserved for the gap.
type EncodeResponse struct {
	ID       string `json:"id"`
	Alphabet string `json:"alphabet"`
	Codes    []int  `json:"codes"`
	Length   int    `json:"length"`
	Decoded  string `json:"decoded"`
}

// EncodeHandler handles POST /sequence/encode. Invalid or reserved symbols
// are rejected with their position.
func (a *API) EncodeHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := a.engine("")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	seq, err := e.Encode(orDefault(req.ID, "sequence"), req.Sequence)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, EncodeResponse{
		ID:       seq.ID,
		Alphabet: e.Config().Alphabet,
		Codes:    seq.Elements(),
		Length:   seq.Len(),
		Decoded:  e.Vocabulary().Decode(seq),
	})
}
