package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/flume/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enumerate the working directory through the ls | where | table chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("dir")
		plain, _ := cmd.Flags().GetBool("plain")
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")

		return cli.Execute(cli.RunOptions{
			Root:  root,
			Plain: plain,
			Debug: debug,
			Flags: cmd.Flags(),
		})
	},
}

func init() {
	runCmd.Flags().String("dir", ".", "Directory to enumerate")
	runCmd.Flags().Bool("plain", false, "Print values line by line instead of a table")
	runCmd.Flags().Int("term-width", 0, "Terminal width budget (0 = auto-detect)")
	runCmd.Flags().String("filter-field", "name", "Record field the filter predicate inspects")
	runCmd.Flags().String("filter-substring", "", "Substring the filter predicate tests for")
	runCmd.Flags().Bool("filter-invert", false, "Keep matches instead of dropping them")
	runCmd.Flags().Int("page-cap", 1000, "Maximum rows per rendered page")
	runCmd.Flags().Duration("page-timeout", time.Second, "Maximum time a page may accumulate")

	rootCmd.AddCommand(runCmd)
}
