package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aria-lang/seqalign-go/internal/stats"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align two sequences, or two FASTA files record by record",
	Long: `Align two sequences, or two FASTA files record by record

Input:
  1. Two sequences as positional arguments, or
  2. Two FASTA files via -1/--seq1-file and -2/--seq2-file. The i-th record
     of the first file is aligned with the i-th record of the second one.
     Files may be gzipped, and one of them may be "-" for stdin.

Output:
  1. By default, a text report per pair with the best alignment, a match line
     ("|" identical, "." different), score, identity and CIGAR.
  2. Tab-delimited rows with --tabular.
  3. All co-optimal alignments instead of the best one with -a/--all.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var fhLog io.Closer
		if opt.Log2File {
			fhLog = addLog(opt.LogFile, opt.Verbose)
		}
		outputLog := opt.Verbose || opt.Log2File

		timeStart := time.Now()
		defer func() {
			if outputLog {
				log.Infof("elapsed time: %s", time.Since(timeStart))
			}
			if opt.Log2File {
				fhLog.Close()
			}
		}()

		engine := getEngine(cmd)
		outFile := getFlagString(cmd, "out-file")
		all := getFlagBool(cmd, "all")
		tabular := getFlagBool(cmd, "tabular")

		pairs := readPairs(cmd, args, opt)
		if outputLog {
			cfg := engine.Config()
			log.Infof("aligning %d pair(s) in %s mode with %d threads (match: %d, mismatch: %d, gap: %d)",
				len(pairs), cfg.Mode, opt.NumCPUs, cfg.Match, cfg.Mismatch, cfg.Gap)
		}

		incr, wait := newProgress("aligned pairs: ", len(pairs), opt.Verbose)
		results := engine.AlignPairs(pairs, opt.NumCPUs, incr)
		wait()

		outfh, err := xopen.Wopen(outFile)
		checkError(err)
		defer outfh.Close()

		if tabular {
			fmt.Fprintln(outfh, "id1\tid2\tmode\tscore\talignments\trank\tidentity\tsimilarity\tgaps\tcigar\tseq1\tseq2")
		}

		var failed int
		best := make([]*seqalign.Alignment, 0, len(results))
		for _, r := range results {
			if r.Err != nil {
				failed++
				log.Warningf("pair %d (%s, %s) skipped: %s", r.Index+1, r.Pair.First.ID, r.Pair.Second.ID, r.Err)
				continue
			}
			if len(r.Result.Alignments) == 0 {
				if !tabular {
					fmt.Fprintf(outfh, "# %s vs %s: no alignment (score: %d)\n\n", r.Pair.First.ID, r.Pair.Second.ID, r.Result.Score)
				}
				continue
			}
			best = append(best, r.Result.Alignments[0])

			alns := r.Result.Alignments
			if !all {
				alns = alns[:1]
			}
			if tabular {
				writeAlignmentRows(outfh, engine, r, alns)
				continue
			}
			fmt.Fprintf(outfh, "# %s vs %s: score %d, %d co-optimal alignment(s)\n",
				r.Pair.First.ID, r.Pair.Second.ID, r.Result.Score, len(r.Result.Alignments))
			for _, aln := range alns {
				fmt.Fprintf(outfh, "%s\n\n", engine.Report(aln))
			}
		}

		if outputLog {
			log.Infof("%d pair(s) aligned, %d failed", len(results)-failed, failed)
			if len(best) > 1 {
				logSummary(best)
			}
			if outFile != "-" {
				log.Infof("alignments saved to: %s", outFile)
			}
		}
	},
}

func writeAlignmentRows(w io.Writer, engine *seqalign.Engine, r *seqalign.PairResult, alns []*seqalign.Alignment) {
	for i, aln := range alns {
		s1, s2 := engine.Strings(aln)
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.Pair.First.ID, r.Pair.Second.ID, engine.Config().Mode,
			r.Result.Score, len(r.Result.Alignments), i+1,
			pct(aln.PercentIdentity()), pct(aln.PercentSimilarity()), aln.GapCount,
			aln.ToCIGAR(), s1, s2)
	}
}

func logSummary(best []*seqalign.Alignment) {
	summary, err := stats.Summarize(best)
	checkError(err)
	log.Infof("best alignments: %s", summary)

	hist, err := stats.NewIdentityHistogram(best, 10)
	checkError(err)
	log.Infof("identity distribution:\n%s", hist)
	lo, hi := hist.ModeBin()
	log.Infof("most common identity range: %.0f-%.0f%%", lo, hi)
}

func init() {
	RootCmd.AddCommand(alignCmd)

	addPairFlags(alignCmd.Flags())
	alignCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))
	alignCmd.Flags().BoolP("all", "a", false,
		formatFlagUsage(`Output all co-optimal alignments, best quality first.`))
	alignCmd.Flags().BoolP("tabular", "t", false,
		formatFlagUsage(`Output tab-delimited rows instead of text reports.`))
}
