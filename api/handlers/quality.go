package handlers

import (
	"net/http"

	"github.com/aria-lang/seqalign-go/internal/quality"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
)

// ProfileAlignRequest represents a read-against-reference request. Quality
// is Phred+33 text of the same length as Read.
type ProfileAlignRequest struct {
	Mode        string `json:"mode,omitempty"`
	ReadID      string `json:"read_id,omitempty"`
	Read        string `json:"read"`
	Quality     string `json:"quality"`
	ReferenceID string `json:"reference_id,omitempty"`
	Reference   string `json:"reference"`

	// Filter trims and gates the read before alignment. MinQuality and
	// MinLength override the defaults when positive.
	Filter     bool `json:"filter,omitempty"`
	MinQuality int  `json:"min_quality,omitempty"`
	MinLength  int  `json:"min_length,omitempty"`

	Limit int `json:"limit,omitempty"`
}

// FilterView describes the outcome of read filtering.
type FilterView struct {
	Passed      bool    `json:"passed"`
	Reason      string  `json:"reason,omitempty"`
	TrimStart   int     `json:"trim_start"`
	TrimEnd     int     `json:"trim_end"`
	MeanQuality float64 `json:"mean_quality"`
}

// ProfileAlignResponse represents the response for profile alignment.
// Aligned reads show the most probable base of each position.
type ProfileAlignResponse struct {
	Mode       string          `json:"mode"`
	Score      float64         `json:"score"`
	Count      int             `json:"count"`
	Filter     *FilterView     `json:"filter,omitempty"`
	Alignments []AlignmentView `json:"alignments"`
}

func (req *ProfileAlignRequest) filter() *seqalign.Filter {
	if !req.Filter {
		return nil
	}
	f := seqalign.DefaultFilter()
	if req.MinQuality > 0 {
		f.MinQuality = req.MinQuality
	}
	if req.MinLength > 0 {
		f.MinLength = req.MinLength
	}
	return f
}

func profileView(e *seqalign.Engine, aln *seqalign.ProfileAlignment) AlignmentView {
	s1, s2 := e.ProfileStrings(aln)
	return AlignmentView{
		AlignedSeq1:  s1,
		AlignedSeq2:  s2,
		Score:        aln.Score,
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

func filterView(r *quality.FilterResult) *FilterView {
	if r == nil {
		return nil
	}
	return &FilterView{
		Passed:      r.Passed,
		Reason:      r.Reason,
		TrimStart:   r.TrimStart,
		TrimEnd:     r.TrimEnd,
		MeanQuality: r.MeanQuality,
	}
}

// ProfileAlignHandler handles POST /profile/align.
func (a *API) ProfileAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req ProfileAlignRequest
	if !decode(w, r, &req) {
		return
	}
	e, err := a.engine(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	read := &seqalign.Record{
		ID:   orDefault(req.ReadID, "read"),
		Seq:  []byte(req.Read),
		Qual: []byte(req.Quality),
	}
	ref := &seqalign.Record{
		ID:  orDefault(req.ReferenceID, "reference"),
		Seq: []byte(req.Reference),
	}

	res, err := e.AlignProfileWith(read, ref, req.filter())
	if err != nil {
		alignError(w, err)
		return
	}

	n := limit(len(res.Alignments), req.Limit)
	views := make([]AlignmentView, n)
	for i, aln := range res.Alignments[:n] {
		views[i] = profileView(e, aln)
	}
	writeJSON(w, http.StatusOK, ProfileAlignResponse{
		Mode:       e.Config().Mode,
		Score:      res.Score,
		Count:      len(res.Alignments),
		Filter:     filterView(res.Filtered),
		Alignments: views,
	})
}

// QualityStatsRequest represents a quality stats request.
type QualityStatsRequest struct {
	Quality string `json:"quality"`
	Phred64 bool   `json:"phred64,omitempty"`
}

// QualityStatsResponse represents the response for quality stats.
type QualityStatsResponse struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   int     `json:"median"`
	Category string  `json:"category"`

	// ErrorRate is the mean base error probability, ErrorQuality its Phred
	// score.
	ErrorRate    float64 `json:"error_rate"`
	ErrorQuality int     `json:"error_quality"`
}

// QualityStatsHandler handles POST /quality/stats.
func (a *API) QualityStatsHandler(w http.ResponseWriter, r *http.Request) {
	var req QualityStatsRequest
	if !decode(w, r, &req) {
		return
	}

	parse := quality.FromPhred33
	if req.Phred64 {
		parse = quality.FromPhred64
	}
	scores, err := parse([]byte(req.Quality))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rate, q, err := scores.ErrorRate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, QualityStatsResponse{
		Count:        scores.Len(),
		Mean:         scores.Average(),
		Median:       scores.Median(),
		Category:     scores.Categorize().String(),
		ErrorRate:    rate,
		ErrorQuality: q,
	})
}
