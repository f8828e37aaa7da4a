package main

import (
	"fmt"
	"strconv"

	"github.com/dgallion1/tokest/internal/report"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words [text...]",
		Short: "Show the per-word token breakdown",
		Long: `Show how the heuristic counter scores each word of the input.

Examples:
  tokest words "Now is the time for all good men"
  tokest words --sort syllables < speech.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, _ := cmd.Flags().GetString("sort")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cmp, err := report.WordOrder(order)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			words := report.Words(text)
			report.Sort(words, cmp)

			total := 0
			for _, w := range words {
				total += w.Tokens()
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"tokens": total, "words": words})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Word", "Cleaned", "Syllables", "Punct", "Tokens"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetColumnAlignment([]int{
				tablewriter.ALIGN_RIGHT,
				tablewriter.ALIGN_LEFT,
				tablewriter.ALIGN_LEFT,
				tablewriter.ALIGN_RIGHT,
				tablewriter.ALIGN_RIGHT,
				tablewriter.ALIGN_RIGHT,
			})
			for _, w := range words {
				table.Append([]string{
					strconv.Itoa(w.Position),
					w.Word,
					w.Cleaned,
					strconv.Itoa(w.Syllables),
					strconv.Itoa(w.Punctuation),
					strconv.Itoa(w.Tokens()),
				})
			}
			table.SetFooter([]string{"", "", "", "", "Total", strconv.Itoa(total)})
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("sort", "position", "order rows by: position, word, syllables")
	return cmd
}
