package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func addPairFlags(flags *pflag.FlagSet) {
	flags.StringP("seq1-file", "1", "",
		formatFlagUsage(`FASTA file of first sequences.`))
	flags.StringP("seq2-file", "2", "",
		formatFlagUsage(`FASTA file of second sequences.`))
}

// readPairs returns the pairs to align: two sequences given as arguments,
// or the records of two FASTA files paired by position.
func readPairs(cmd *cobra.Command, args []string, opt *Options) []seqalign.Pair {
	file1 := getFlagString(cmd, "seq1-file")
	file2 := getFlagString(cmd, "seq2-file")

	if file1 == "" && file2 == "" {
		if len(args) != 2 {
			checkError(fmt.Errorf("two sequences or flags -1/--seq1-file and -2/--seq2-file needed"))
		}
		return []seqalign.Pair{{
			First:  &seqalign.Record{ID: "seq1", Seq: []byte(args[0])},
			Second: &seqalign.Record{ID: "seq2", Seq: []byte(args[1])},
		}}
	}
	if file1 == "" || file2 == "" {
		checkError(fmt.Errorf("flags -1/--seq1-file and -2/--seq2-file should be given together"))
	}
	if len(args) > 0 {
		checkError(fmt.Errorf("no positional arguments allowed with -1/--seq1-file and -2/--seq2-file"))
	}
	if isStdin(file1) && isStdin(file2) {
		checkError(fmt.Errorf("only one of -1/--seq1-file and -2/--seq2-file can be stdin"))
	}

	records1, err := seqalign.ReadFASTA(file1)
	checkError(err)
	records2, err := seqalign.ReadFASTA(file2)
	checkError(err)

	if len(records1) != len(records2) {
		log.Warningf("%d records in %s but %d in %s, extra records are ignored",
			len(records1), file1, len(records2), file2)
	}
	if opt.Verbose {
		log.Infof("%d pairs read from %s and %s", min(len(records1), len(records2)),
			filepath.Base(file1), filepath.Base(file2))
	}
	return seqalign.PairRecords(records1, records2)
}

// newProgress adds a progress bar of total steps on stderr. It returns nil
// functions when no bar is shown.
func newProgress(name string, total int, show bool) (incr func(), wait func()) {
	if !show || total < 2 {
		return nil, func() {}
	}

	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.AverageETA(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)

	return bar.Increment, pbs.Wait
}
