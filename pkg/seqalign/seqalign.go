// Package seqalign provides a high-level API for pairwise sequence alignment.
//
// It ties the alignment core to text input, FASTA/FASTQ files and a TOML
// configuration.
//
// Example usage:
//
//	engine, err := seqalign.NewEngine(seqalign.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.AlignText("a", "GATTACA", "b", "GCATGCT")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(engine.Report(result.Alignments[0]))
package seqalign

import (
	"fmt"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/config"
	"github.com/aria-lang/seqalign-go/internal/quality"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
	"github.com/pkg/errors"
)

// Re-export types for convenience
type (
	Sequence         = sequence.Sequence[int]
	Profile          = sequence.Profile
	SoftElement      = sequence.SoftElement
	Vocabulary       = sequence.Vocabulary
	Alignment        = alignment.Alignment[int, int]
	ProfileAlignment = alignment.Alignment[*sequence.SoftElement, float64]
	Mode             = alignment.Mode
	Params           = alignment.Params
	Config           = config.Config
	QualityScores    = quality.Scores
	Filter           = quality.Filter
	Summary          = stats.Summary
)

// Modes
const (
	Global       = alignment.Global
	StrictGlobal = alignment.StrictGlobal
	Local        = alignment.Local
)

// Modes lists all alignment modes.
var Modes = []Mode{Global, StrictGlobal, Local}

// Errors
var (
	ErrUnknownMode        = alignment.ErrUnknownMode
	ErrInconsistentMatrix = alignment.ErrInconsistentMatrix
)

// ParseMode parses "global", "strict-global" or "local".
func ParseMode(s string) (Mode, error) {
	return alignment.ParseMode(s)
}

// DefaultFilter returns the default read filter.
func DefaultFilter() *Filter {
	return quality.DefaultFilter()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// Result is the outcome of aligning one pair.
type Result struct {
	Score      int
	Alignments []*Alignment
}

// ProfileResult is the outcome of aligning a read profile against a
// reference.
type ProfileResult struct {
	Score      float64
	Alignments []*ProfileAlignment
	Filtered   *quality.FilterResult // nil when no filter was applied
}

// Engine aligns text, records and read profiles under one configuration.
// An Engine is safe for concurrent use.
type Engine struct {
	cfg      *Config
	vocab    *Vocabulary
	aligner  *alignment.Aligner[int, int]
	profiles *alignment.Aligner[*sequence.SoftElement, float64]
	profiler *quality.Profiler

	// Filter, if set, trims and gates reads before profile alignment.
	Filter *Filter
}

// NewEngine validates cfg and builds the aligners.
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	aligner, err := cfg.Aligner()
	if err != nil {
		return nil, err
	}
	profiles, err := cfg.ProfileAligner()
	if err != nil {
		return nil, err
	}
	vocab, err := cfg.Vocabulary()
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:      cfg,
		vocab:    vocab,
		aligner:  aligner,
		profiles: profiles,
		profiler: quality.NewProfiler(vocab, cfg.HardAbove),
	}, nil
}

// Config returns the configuration of the engine.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Vocabulary returns the symbol encoding of the engine.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// Encode converts text into a coded sequence.
func (e *Engine) Encode(id, text string) (*Sequence, error) {
	s, err := e.vocab.Encode(id, text)
	if err != nil {
		return nil, errors.Wrapf(err, "sequence %s", id)
	}
	return s, nil
}

// Align aligns two coded sequences.
func (e *Engine) Align(first, second *Sequence) (*Result, error) {
	score, alns, err := e.aligner.Align(first, second)
	if err != nil {
		return nil, errors.Wrapf(err, "align %s against %s", first.ID, second.ID)
	}
	alignment.SortByQuality(alns)
	return &Result{Score: score, Alignments: alns}, nil
}

// Score returns the optimal score of two coded sequences.
func (e *Engine) Score(first, second *Sequence) (int, error) {
	return e.aligner.Score(first, second)
}

// AlignText encodes and aligns two strings.
func (e *Engine) AlignText(id1, text1, id2, text2 string) (*Result, error) {
	first, err := e.Encode(id1, text1)
	if err != nil {
		return nil, err
	}
	second, err := e.Encode(id2, text2)
	if err != nil {
		return nil, err
	}
	return e.Align(first, second)
}

// AlignRecords aligns two FASTA/FASTQ records, ignoring qualities.
func (e *Engine) AlignRecords(first, second *Record) (*Result, error) {
	return e.AlignText(first.ID, string(first.Seq), second.ID, string(second.Seq))
}

// AlignProfile turns a FASTQ read into a quality profile and aligns it
// against a reference record, gated by e.Filter.
func (e *Engine) AlignProfile(read, reference *Record) (*ProfileResult, error) {
	return e.AlignProfileWith(read, reference, e.Filter)
}

// AlignProfileWith is AlignProfile with an explicit filter; nil skips
// filtering.
func (e *Engine) AlignProfileWith(read, reference *Record, filter *Filter) (*ProfileResult, error) {
	if len(read.Qual) == 0 {
		return nil, errors.Errorf("read %s has no quality scores", read.ID)
	}
	coded, err := e.Encode(read.ID, string(read.Seq))
	if err != nil {
		return nil, err
	}
	scores, err := quality.FromPhred33(read.Qual)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", read.ID)
	}

	res := &ProfileResult{}
	if filter != nil {
		res.Filtered, err = filter.Apply(coded, scores)
		if err != nil {
			return nil, err
		}
		if !res.Filtered.Passed {
			return res, nil
		}
		coded, scores = res.Filtered.Read, res.Filtered.Scores
	}

	profile, err := e.profiler.Profile(coded, scores)
	if err != nil {
		return nil, err
	}
	ref, err := e.Encode(reference.ID, string(reference.Seq))
	if err != nil {
		return nil, err
	}

	score, alns, err := e.profiles.Align(profile, sequence.ProfileFromSequence(ref))
	if err != nil {
		return nil, errors.Wrapf(err, "align %s against %s", read.ID, reference.ID)
	}
	alignment.SortByQuality(alns)
	res.Score, res.Alignments = score, alns
	return res, nil
}

// Symbol renders a code with the engine vocabulary.
func (e *Engine) Symbol(code int) string {
	return string(e.vocab.Symbol(code))
}

// SoftSymbol renders a soft element as its most probable symbol.
func (e *Engine) SoftSymbol(el *SoftElement) string {
	return string(e.vocab.Symbol(el.Dominant()))
}

// Strings returns both sides of an alignment as text, gaps as '-'.
func (e *Engine) Strings(aln *Alignment) (string, string) {
	return e.vocab.Decode(aln.First), e.vocab.Decode(aln.Second)
}

// ProfileStrings returns both sides of a profile alignment by dominant
// symbols.
func (e *Engine) ProfileStrings(aln *ProfileAlignment) (string, string) {
	render := func(p *Profile) string {
		codes := sequence.WithCapacity[int](p.ID, p.Len())
		for i := 0; i < p.Len(); i++ {
			codes.Push(p.At(i).Dominant())
		}
		return e.vocab.Decode(codes)
	}
	return render(aln.First), render(aln.Second)
}

// Report renders an alignment with a match line, score, identity and CIGAR.
func (e *Engine) Report(aln *Alignment) string {
	return aln.FormatReport(e.Symbol)
}

// ProfileReport renders a profile alignment by dominant symbols.
func (e *Engine) ProfileReport(aln *ProfileAlignment) string {
	return aln.FormatReport(e.SoftSymbol)
}

// Version returns the seqalign version.
func Version() string {
	return "0.3.0"
}

// Info returns information about seqalign.
func Info() string {
	return fmt.Sprintf(`seqalign v%s - pairwise sequence alignment

Features:
  - global alignment with free end gaps
  - strict global alignment (Needleman-Wunsch)
  - local alignment (Smith-Waterman) with optional minimum score
  - enumeration of all co-optimal alignments
  - quality-aware profile alignment of FASTQ reads
  - FASTA/FASTQ input, TOML configuration
`, Version())
}
