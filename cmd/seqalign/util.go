package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/aria-lang/seqalign-go/internal/config"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/pkg/errors"
	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

// VERSION is the version of seqalign.
var VERSION = seqalign.Version()

// Options contains the global flags
type Options struct {
	NumCPUs int
	Verbose bool

	LogFile  string
	Log2File bool
}

func getOptions(cmd *cobra.Command) *Options {
	threads := getFlagNonNegativeInt(cmd, "threads")
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(threads)

	logfile := getFlagString(cmd, "log")
	return &Options{
		NumCPUs: threads,
		Verbose: !getFlagBool(cmd, "quiet"),

		LogFile:  logfile,
		Log2File: logfile != "",
	}
}

// getConfig loads the config file and applies the scoring flags that were
// set on the command line.
func getConfig(cmd *cobra.Command) (*seqalign.Config, error) {
	var cfg *seqalign.Config
	var err error
	if file := getFlagString(cmd, "config"); file != "" {
		cfg, err = config.Load(file)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = getFlagString(cmd, "mode")
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = getFlagString(cmd, "alphabet")
	}
	if flags.Changed("match") {
		cfg.Match = getFlagInt(cmd, "match")
	}
	if flags.Changed("mismatch") {
		cfg.Mismatch = getFlagInt(cmd, "mismatch")
	}
	if flags.Changed("gap") {
		cfg.Gap = getFlagInt(cmd, "gap")
	}
	if flags.Changed("min-score") {
		v := getFlagInt(cmd, "min-score")
		cfg.MinScore = &v
	}
	if flags.Changed("max-alignments") {
		cfg.MaxAlignments = getFlagNonNegativeInt(cmd, "max-alignments")
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

func getEngine(cmd *cobra.Command) *seqalign.Engine {
	cfg, err := getConfig(cmd)
	checkError(err)
	engine, err := seqalign.NewEngine(cfg)
	checkError(err)
	return engine
}

func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}

func isStdin(file string) bool {
	return file == "-"
}

func formatFlagUsage(s string) string {
	return "► " + s
}

func addLog(file string, verbose bool) *os.File {
	w, err := os.Create(file)
	if err != nil {
		checkError(fmt.Errorf("failed to write log file %s: %s", file, err))
	}

	var format = logging.MustStringFormatter(`%{time:15:04:05.000} [%{level:.4s}] %{message}`)
	backend := logging.NewLogBackend(w, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)

	if verbose {
		logging.SetBackend(backendFormatter, stderrBackend)
	} else {
		logging.SetBackend(backendFormatter)
	}

	return w
}

func getFlagString(cmd *cobra.Command, flag string) string {
	value, err := cmd.Flags().GetString(flag)
	checkError(err)
	return value
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	value, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return value
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return value
}

func getFlagNonNegativeInt(cmd *cobra.Command, flag string) int {
	value, err := cmd.Flags().GetInt(flag)
	checkError(err)
	if value < 0 {
		checkError(fmt.Errorf("value of flag --%s should be greater than or equal to 0", flag))
	}
	return value
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
