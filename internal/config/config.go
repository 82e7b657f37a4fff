// Package config loads alignment settings from TOML files.
//
// A config file looks like:
//
//	mode = "local"
//	alphabet = "dna"
//	match = 2
//	mismatch = -1
//	gap = -2
//	min_score = 10
//	max_alignments = 100
//	workers = 4
package config

import (
	"os"

	"github.com/aria-lang/seqalign-go/internal/alignment"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// DefaultPath is read by the command line tools when no file is given and it
// exists.
const DefaultPath = "~/.seqalign.toml"

// Config holds the settings of one alignment run.
type Config struct {
	Mode     string `toml:"mode"`
	Alphabet string `toml:"alphabet"`

	Match    int `toml:"match"`
	Mismatch int `toml:"mismatch"`
	Gap      int `toml:"gap"`

	// MinScore applies to local alignment only; nil keeps the best-score
	// start cells.
	MinScore      *int `toml:"min_score,omitempty"`
	MaxAlignments int  `toml:"max_alignments"`
	Workers       int  `toml:"workers"`

	// HardAbove is the Phred score from which read bases are treated as
	// certain in profile alignment. Zero keeps every base soft.
	HardAbove int `toml:"hard_above"`
}

// Default returns the DNA defaults for global alignment.
func Default() *Config {
	p := alignment.DefaultDNA()
	return &Config{
		Mode:          alignment.Global.String(),
		Alphabet:      "dna",
		Match:         p.Match,
		Mismatch:      p.Mismatch,
		Gap:           p.Gap,
		MaxAlignments: 100,
		Workers:       1,
	}
}

// Load reads a TOML file over the defaults. A leading ~ in path is expanded.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	file, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	cfg := Default()
	if err = toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", file)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, file)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath if it exists and returns Default otherwise.
func LoadDefault() (*Config, error) {
	file, err := homedir.Expand(DefaultPath)
	if err != nil {
		return Default(), nil
	}
	if _, err = os.Stat(file); err != nil {
		return Default(), nil
	}
	return Load(file)
}

// Validate checks the mode, the alphabet, the scoring parameters and the
// limits.
func (c *Config) Validate() error {
	if _, err := alignment.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := sequence.ByName(c.Alphabet); err != nil {
		return err
	}
	if _, err := alignment.NewParams(c.Match, c.Mismatch, c.Gap); err != nil {
		return err
	}
	if c.MaxAlignments < 0 {
		return errors.Errorf("max_alignments should be >= 0, got %d", c.MaxAlignments)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers should be >= 0, got %d", c.Workers)
	}
	if c.HardAbove < 0 {
		return errors.Errorf("hard_above should be >= 0, got %d", c.HardAbove)
	}
	return nil
}

// Params returns the scoring parameters.
func (c *Config) Params() *alignment.Params {
	return &alignment.Params{Match: c.Match, Mismatch: c.Mismatch, Gap: c.Gap}
}

// AlignMode returns the parsed alignment mode.
func (c *Config) AlignMode() (alignment.Mode, error) {
	return alignment.ParseMode(c.Mode)
}

// Vocabulary returns a fresh vocabulary for the configured alphabet.
func (c *Config) Vocabulary() (*sequence.Vocabulary, error) {
	return sequence.ByName(c.Alphabet)
}

// Aligner builds an aligner over coded sequences.
func (c *Config) Aligner() (*alignment.Aligner[int, int], error) {
	mode, err := c.AlignMode()
	if err != nil {
		return nil, err
	}
	a := alignment.New[int, int](mode, c.Params().Scoring(), c.Gap, sequence.GapCode)
	c.apply(mode, func(v int) { a.WithMinScore(v) }, &a.MaxAlignments, &a.Workers)
	return a, nil
}

// ProfileAligner builds an aligner over profiles with the same settings.
func (c *Config) ProfileAligner() (*alignment.Aligner[*sequence.SoftElement, float64], error) {
	mode, err := c.AlignMode()
	if err != nil {
		return nil, err
	}
	a := alignment.NewProfileAligner[int](mode, c.Params().Scoring(), float64(c.Gap), sequence.GapCode)
	c.apply(mode, func(v int) { a.WithMinScore(float64(v)) }, &a.MaxAlignments, &a.Workers)
	return a, nil
}

func (c *Config) apply(mode alignment.Mode, setMin func(int), maxAlignments, workers *int) {
	if c.MinScore != nil && mode == alignment.Local {
		setMin(*c.MinScore)
	}
	*maxAlignments = c.MaxAlignments
	*workers = c.Workers
}

// Marshal encodes the config as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
