// Package handlers provides HTTP handlers for the seqalign API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// API serves alignment requests with one engine per mode. All engines share
// the scoring settings of the base configuration.
type API struct {
	cfg     *seqalign.Config
	engines map[seqalign.Mode]*seqalign.Engine
}

// New builds the engines for every mode from cfg.
func New(cfg *seqalign.Config) (*API, error) {
	api := &API{cfg: cfg, engines: make(map[seqalign.Mode]*seqalign.Engine, len(seqalign.Modes))}
	for _, mode := range seqalign.Modes {
		c := *cfg
		c.Mode = mode.String()
		e, err := seqalign.NewEngine(&c)
		if err != nil {
			return nil, errors.Wrapf(err, "%s engine", mode)
		}
		api.engines[mode] = e
	}
	return api, nil
}

// Routes mounts the API endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Route("/alignment", func(r chi.Router) {
		r.Post("/score", a.ScoreHandler)
		r.Post("/{mode}", a.AlignHandler)
	})
	r.Post("/profile/align", a.ProfileAlignHandler)
	r.Post("/quality/stats", a.QualityStatsHandler)
	r.Post("/sequence/encode", a.EncodeHandler)
}

// engine returns the engine for a mode name; an empty name selects the
// configured mode.
func (a *API) engine(name string) (*seqalign.Engine, error) {
	if name == "" {
		name = a.cfg.Mode
	}
	mode, err := seqalign.ParseMode(name)
	if err != nil {
		return nil, err
	}
	return a.engines[mode], nil
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// alignError maps an alignment failure to a status code. Inconsistent
// matrices are internal faults, everything else is bad input.
func alignError(w http.ResponseWriter, err error) {
	if errors.Is(err, seqalign.ErrInconsistentMatrix) {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return false
	}
	return true
}
