package handlers

import (
	"net/http"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/go-chi/chi/v5"
)

// AlignmentRequest represents an alignment request.
type AlignmentRequest struct {
	ID1       string `json:"id1,omitempty"`
	Sequence1 string `json:"sequence1"`
	ID2       string `json:"id2,omitempty"`
	Sequence2 string `json:"sequence2"`

	// Limit caps the number of alignments returned; 0 returns all.
	Limit int `json:"limit,omitempty"`
}

// AlignmentView is one optimal alignment.
type AlignmentView struct {
	AlignedSeq1  string  `json:"aligned_seq1"`
	AlignedSeq2  string  `json:"aligned_seq2"`
	Score        float64 `json:"score"`
	Identity     float64 `json:"identity"`
	Similarity   float64 `json:"similarity"`
	GapPercent   float64 `json:"gap_percent"`
	CIGAR        string  `json:"cigar"`
	Matches      int     `json:"matches"`
	Gaps         int     `json:"gaps"`
	GapOpenings  int     `json:"gap_openings"`
	FirstOffset  int     `json:"first_offset"`
	SecondOffset int     `json:"second_offset"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	Mode       string          `json:"mode"`
	Score      int             `json:"score"`
	Count      int             `json:"count"`
	Alignments []AlignmentView `json:"alignments"`
}

func limit(n, most int) int {
	if most > 0 && most < n {
		return most
	}
	return n
}

func orDefault(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return id
}

func alignmentView(e *seqalign.Engine, aln *seqalign.Alignment) AlignmentView {
	s1, s2 := e.Strings(aln)
	return AlignmentView{
		AlignedSeq1:  s1,
		AlignedSeq2:  s2,
		Score:        float64(aln.Score),
		Identity:     aln.PercentIdentity(),
		Similarity:   aln.PercentSimilarity(),
		GapPercent:   aln.PercentGap(),
		CIGAR:        aln.ToCIGAR(),
		Matches:      aln.IdenticalCount,
		Gaps:         aln.GapCount,
		GapOpenings:  aln.GapOpenings(),
		FirstOffset:  aln.FirstOffset,
		SecondOffset: aln.SecondOffset,
	}
}

// AlignHandler handles POST /alignment/{mode}. It returns every co-optimal
// alignment, best quality first.
func (a *API) AlignHandler(w http.ResponseWriter, r *http.Request) {
	e, err := a.engine(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := e.AlignText(
		orDefault(req.ID1, "sequence1"), req.Sequence1,
		orDefault(req.ID2, "sequence2"), req.Sequence2)
	if err != nil {
		alignError(w, err)
		return
	}

	n := limit(len(res.Alignments), req.Limit)
	views := make([]AlignmentView, n)
	for i, aln := range res.Alignments[:n] {
		views[i] = alignmentView(e, aln)
	}
	writeJSON(w, http.StatusOK, AlignmentResponse{
		Mode:       e.Config().Mode,
		Score:      res.Score,
		Count:      len(res.Alignments),
		Alignments: views,
	})
}

// ScoreRequest represents a score-only request.
type ScoreRequest struct {
	Mode      string `json:"mode,omitempty"`
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
}

// ScoreHandler handles POST /alignment/score. It fills the matrix without
// any backtrace.
func (a *API) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := a.engine(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	first, err := e.Encode("sequence1", req.Sequence1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	second, err := e.Encode("sequence2", req.Sequence2)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	score, err := e.Score(first, second)
	if err != nil {
		alignError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ScoreResponse{Mode: e.Config().Mode, Score: score})
}
