package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aria-lang/seqalign-go/api/handlers"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	api, err := handlers.New(seqalign.DefaultConfig())
	require.NoError(t, err)
	h := newRouter(api)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "/api/alignment/score")

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"sequence1": "ACGT", "sequence2": "ACGT"}`)
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/alignment/local", body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":8`)
}
