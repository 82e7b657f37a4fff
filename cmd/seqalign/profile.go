package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aria-lang/seqalign-go/internal/quality"
	"github.com/aria-lang/seqalign-go/internal/sequence"
	"github.com/aria-lang/seqalign-go/internal/stats"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Align FASTQ reads as quality profiles against a reference",
	Long: `Align FASTQ reads as quality profiles against a reference

Each read position becomes a distribution over the alphabet: the called base
keeps probability 1-e, where e is the Phred error probability, and e is spread
over the other symbols. Position scores are expected substitution scores, so
low-quality mismatches cost less than confident ones.

Bases with a quality of at least --hard-above are treated as certain and count
as identical to matching reference bases. Other positions never count as
identical, so identity is only meaningful with --hard-above.

Reads can be trimmed and filtered by quality before alignment with -f/--filter.

Output columns:
  read, ref, length, mean_quality, passed, trim_start, trim_end,
  score, alignments, identity, cigar, read_aln, ref_aln

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

		cfg, err := getConfig(cmd)
		checkError(err)
		if cmd.Flags().Changed("hard-above") {
			cfg.HardAbove = getFlagNonNegativeInt(cmd, "hard-above")
		}
		engine, err := seqalign.NewEngine(cfg)
		checkError(err)

		if getFlagBool(cmd, "filter") {
			f := seqalign.DefaultFilter()
			f.MinQuality = getFlagNonNegativeInt(cmd, "min-quality")
			f.MinLength = getFlagNonNegativeInt(cmd, "min-length")
			f.QualityThreshold = getFlagNonNegativeInt(cmd, "trim-quality")
			f.WindowSize = getFlagNonNegativeInt(cmd, "window")
			f.MinWindowQuality = float64(f.QualityThreshold)
			engine.Filter = f
		}

		refFile := getFlagString(cmd, "ref")
		if refFile == "" {
			checkError(fmt.Errorf("flag -r/--ref needed"))
		}
		ref := selectReference(refFile, getFlagString(cmd, "ref-id"))

		files := args
		if len(files) == 0 {
			files = []string{"-"}
		}
		var reads []*seqalign.Record
		for _, file := range files {
			records, err := seqalign.ReadFASTQ(file)
			checkError(err)
			reads = append(reads, records...)
		}
		if outputLog {
			log.Infof("aligning %d read(s) from %d file(s) against %s (%d bp) in %s mode",
				len(reads), len(files), ref.ID, len(ref.Seq), cfg.Mode)
			logReadStats(engine, reads)
		}

		incr, wait := newProgress("aligned reads: ", len(reads), opt.Verbose)
		results := engine.AlignProfiles(reads, ref, opt.NumCPUs, incr)
		wait()

		outfh, err := xopen.Wopen(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outfh.Close()

		fmt.Fprintln(outfh, "read\tref\tlength\tmean_quality\tpassed\ttrim_start\ttrim_end\tscore\talignments\tidentity\tcigar\tread_aln\tref_aln")

		var failed, filtered int
		best := make([]*seqalign.ProfileAlignment, 0, len(results))
		for _, r := range results {
			if r.Err != nil {
				failed++
				log.Warningf("read %s skipped: %s", r.Read.ID, r.Err)
				continue
			}
			res := r.Result

			var meanQ float64
			passed, start, end := true, 0, len(r.Read.Seq)
			if res.Filtered != nil {
				meanQ = res.Filtered.MeanQuality
				passed, start, end = res.Filtered.Passed, res.Filtered.TrimStart, res.Filtered.TrimEnd
			} else if q, err := quality.FromPhred33(r.Read.Qual); err == nil {
				meanQ = q.Average()
			}
			if !passed {
				filtered++
				fmt.Fprintf(outfh, "%s\t%s\t%d\t%s\tno\t%d\t%d\t\t0\t\t\t\t\n",
					r.Read.ID, ref.ID, len(r.Read.Seq), pct(meanQ), start, end)
				continue
			}
			if len(res.Alignments) == 0 {
				fmt.Fprintf(outfh, "%s\t%s\t%d\t%s\tyes\t%d\t%d\t%s\t0\t\t\t\t\n",
					r.Read.ID, ref.ID, len(r.Read.Seq), pct(meanQ), start, end, pct(res.Score))
				continue
			}

			aln := res.Alignments[0]
			best = append(best, aln)
			s1, s2 := engine.ProfileStrings(aln)
			fmt.Fprintf(outfh, "%s\t%s\t%d\t%s\tyes\t%d\t%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
				r.Read.ID, ref.ID, len(r.Read.Seq), pct(meanQ), start, end,
				pct(res.Score), len(res.Alignments), pct(aln.PercentIdentity()),
				aln.ToCIGAR(), s1, s2)
		}

		if outputLog {
			log.Infof("%d read(s) aligned, %d filtered out, %d failed",
				len(results)-failed-filtered, filtered, failed)
			if len(best) > 1 {
				summary, err := stats.Summarize(best)
				checkError(err)
				log.Infof("best alignments: %s", summary)
			}
		}
	},
}

// selectReference returns the record with the given ID, or the first record
// when id is empty.
func selectReference(file, id string) *seqalign.Record {
	records, err := seqalign.ReadFASTA(file)
	checkError(err)
	if len(records) == 0 {
		checkError(fmt.Errorf("no sequences in %s", file))
	}
	if id == "" {
		if len(records) > 1 {
			log.Warningf("%d sequences in %s, using the first one: %s", len(records), file, records[0].ID)
		}
		return records[0]
	}
	for _, r := range records {
		if r.ID == id {
			return r
		}
	}
	checkError(fmt.Errorf("reference %s not found in %s", id, file))
	return nil
}

// logReadStats logs length and quality statistics of the reads that can be
// decoded.
func logReadStats(engine *seqalign.Engine, reads []*seqalign.Record) {
	coded := make([]*sequence.Sequence[int], 0, len(reads))
	scores := make([]*quality.Scores, 0, len(reads))
	for _, r := range reads {
		s, err := engine.Encode(r.ID, string(r.Seq))
		if err != nil {
			continue
		}
		q, err := quality.FromPhred33(r.Qual)
		if err != nil {
			continue
		}
		coded = append(coded, s)
		scores = append(scores, q)
	}
	if len(coded) == 0 {
		return
	}

	rs, err := stats.FromReads(coded, scores)
	checkError(err)
	log.Infof("reads: %s", rs)
	log.Infof("quality categories: %s, %.1f%% medium or better",
		rs.QualityDistribution, rs.QualityDistribution.AcceptableRatio()*100)
}

func init() {
	RootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringP("ref", "r", "",
		formatFlagUsage(`FASTA file of the reference.`))
	profileCmd.Flags().StringP("ref-id", "", "",
		formatFlagUsage(`ID of the reference record. The first record is used by default.`))
	profileCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))
	profileCmd.Flags().IntP("hard-above", "H", 0,
		formatFlagUsage(`Treat bases with at least this Phred quality as certain. 0 keeps all bases soft. Overrides the config file.`))

	profileCmd.Flags().BoolP("filter", "f", false,
		formatFlagUsage(`Trim and filter reads by quality before alignment.`))
	profileCmd.Flags().IntP("min-quality", "q", 20,
		formatFlagUsage(`Minimum mean quality of a trimmed read.`))
	profileCmd.Flags().IntP("min-length", "l", 20,
		formatFlagUsage(`Minimum length of a trimmed read.`))
	profileCmd.Flags().IntP("trim-quality", "Q", 20,
		formatFlagUsage(`Quality threshold for trimming read ends.`))
	profileCmd.Flags().IntP("window", "w", 4,
		formatFlagUsage(`Sliding window size for trimming. 0 trims base by base.`))
}
