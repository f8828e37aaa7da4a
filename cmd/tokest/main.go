// Command tokest estimates LLM token counts for text and documents.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokest",
		Short: "Estimate token counts for text and documents",
		Long: `tokest estimates how many tokens a piece of text will cost an LLM.

The default "heuristic" counter counts syllables plus punctuation, which
needs no model vocabulary and runs anywhere. Other counters can be picked
with --counter; see "tokest counters".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || os.Getenv("NO_COLOR") != "" {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newEstimateCmd(),
		newWordsCmd(),
		newChunkCmd(),
		newCountersCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				writeJSON(cmd, map[string]string{"version": version})
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tokest version %s\n", version)
		},
	}
}
