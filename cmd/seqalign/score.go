package main

import (
	"fmt"

	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print optimal alignment scores only",
	Long: `Print optimal alignment scores only

Only the score matrix is filled, no alignment is traced back. Input is the
same as for "seqalign align".

Output columns:
  id1, id2, mode, score

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		engine := getEngine(cmd)
		pairs := readPairs(cmd, args, opt)

		outfh, err := xopen.Wopen(getFlagString(cmd, "out-file"))
		checkError(err)
		defer outfh.Close()

		mode := engine.Config().Mode
		fmt.Fprintln(outfh, "id1\tid2\tmode\tscore")
		for _, p := range pairs {
			first, err := engine.Encode(p.First.ID, string(p.First.Seq))
			if err != nil {
				log.Warningf("pair %s, %s skipped: %s", p.First.ID, p.Second.ID, err)
				continue
			}
			second, err := engine.Encode(p.Second.ID, string(p.Second.Seq))
			if err != nil {
				log.Warningf("pair %s, %s skipped: %s", p.First.ID, p.Second.ID, err)
				continue
			}
			score, err := engine.Score(first, second)
			checkError(err)
			fmt.Fprintf(outfh, "%s\t%s\t%s\t%d\n", p.First.ID, p.Second.ID, mode, score)
		}
	},
}

func init() {
	RootCmd.AddCommand(scoreCmd)

	addPairFlags(scoreCmd.Flags())
	scoreCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))
}
