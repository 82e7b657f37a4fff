package main

import (
	"fmt"
	"os"

	"github.com/aria-lang/seqalign-go/pkg/seqalign"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(seqalign.Info())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the effective configuration as TOML

The output merges the config file (or the defaults) with the scoring flags and
can be saved as ~/.seqalign.toml.

`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := getConfig(cmd)
		checkError(err)
		data, err := cfg.Marshal()
		checkError(err)
		os.Stdout.Write(data)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(configCmd)
}
