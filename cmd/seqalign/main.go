// Command seqalign aligns pairs of sequences from the command line.
//
// Usage:
//
//	seqalign [command] [flags]
//
// Commands:
//
//	align       Align two sequences, or two FASTA files record by record
//	score       Print optimal alignment scores only
//	profile     Align FASTQ reads as quality profiles against a reference
//	config      Print the effective configuration as TOML
//	version     Print version information
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	colorable "github.com/mattn/go-colorable"
	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var log *logging.Logger

var stderrBackend logging.Backend

var logFormat = logging.MustStringFormatter(`%{time:15:04:05.000} %{color}[%{level:.4s}]%{color:reset} %{message}`)

func init() {
	var stderr io.Writer = os.Stderr
	if runtime.GOOS == "windows" {
		stderr = colorable.NewColorableStderr()
	}
	backend := logging.NewLogBackend(stderr, "", 0)
	stderrBackend = logging.NewBackendFormatter(backend, logFormat)
	logging.SetBackend(stderrBackend)

	log = logging.MustGetLogger("seqalign")
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "seqalign",
	Short: "pairwise sequence alignment with co-optimal alignment enumeration",
	Long: fmt.Sprintf(`seqalign - pairwise sequence alignment

Global (free end gaps), strict global and local alignment of DNA, protein
or arbitrary text, reporting every co-optimal alignment.

Version: v%s

`, VERSION),
}

func init() {
	addGlobalFlags(RootCmd.PersistentFlags())
	RootCmd.CompletionOptions.DisableDefaultCmd = true
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.IntP("threads", "j", runtime.NumCPU(),
		formatFlagUsage("Number of CPU cores to use. 0 for all cores."))
	flags.BoolP("quiet", "", false,
		formatFlagUsage("Do not print any verbose information. But you can write them to file with --log."))
	flags.StringP("log", "", "",
		formatFlagUsage("Log file."))
	flags.StringP("config", "c", "",
		formatFlagUsage(`TOML config file. ~/.seqalign.toml is read if it exists and no file is given.`))

	flags.StringP("mode", "m", "",
		formatFlagUsage(`Alignment mode: global, strict-global or local. Overrides the config file.`))
	flags.StringP("alphabet", "A", "",
		formatFlagUsage(`Alphabet: dna, protein or text. Overrides the config file.`))
	flags.IntP("match", "", 0,
		formatFlagUsage(`Score of identical elements. Overrides the config file.`))
	flags.IntP("mismatch", "", 0,
		formatFlagUsage(`Score of different elements. Overrides the config file.`))
	flags.IntP("gap", "", 0,
		formatFlagUsage(`Score of a gap position. Overrides the config file.`))
	flags.IntP("min-score", "", 0,
		formatFlagUsage(`Local mode only: report alignments from every cell scoring at least this value, instead of the best cells only.`))
	flags.IntP("max-alignments", "n", 0,
		formatFlagUsage(`Maximum number of alignments enumerated per pair. 0 for no limit. Overrides the config file.`))
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
