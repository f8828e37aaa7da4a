package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tokest/internal/report"
	"github.com/dgallion1/tokest/internal/tokenest"
	"github.com/spf13/cobra"
)

func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate [files...]",
		Short: "Estimate tokens for stdin or files",
		Long: `Estimate the token count of each file, or of stdin when no file is given.

Markdown, HTML, PDF, DOCX, CSV and text files are parsed into sections
first; anything else is counted as plain text.

Examples:
  echo "hello world" | tokest estimate
  tokest estimate README.md docs/*.pdf
  tokest estimate --sections --counter bpe handbook.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("counter")
			sections, _ := cmd.Flags().GetBool("sections")
			jsonOut, _ := cmd.Flags().GetBool("json")

			requested := strings.ToLower(name)
			name, count, err := tokenest.Resolve(requested)
			if err != nil {
				return err
			}
			if requested != "" && requested != name {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s counter unavailable, using %s\n", requested, name)
			}

			var reports []report.Report
			if len(args) == 0 {
				text, err := readInput(cmd, nil)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				reports = append(reports, report.Report{
					Title:    "-",
					Counter:  name,
					Tokens:   count(text),
					Words:    len(strings.Fields(text)),
					Sections: []report.Section{},
				})
			}
			for _, path := range args {
				tree, err := loadTree(path)
				if err != nil {
					return err
				}
				rep := report.Build(tree, name, count)
				rep.Title = path
				reports = append(reports, rep)
			}

			if jsonOut {
				if len(reports) == 1 {
					return writeJSON(cmd, reports[0])
				}
				return writeJSON(cmd, reports)
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, rep := range reports {
				total += rep.Tokens
				fmt.Fprintf(out, "%s  %s %s\n", green(fmt.Sprintf("%8d", rep.Tokens)), rep.Title, gray(fmt.Sprintf("(%d words)", rep.Words)))
				if sections {
					secs := append([]report.Section(nil), rep.Sections...)
					report.Sort(secs, report.SectionsByTokens)
					for _, sec := range secs {
						fmt.Fprintf(out, "  %8d  %s\n", sec.Tokens, cyan(sec.Name()))
					}
				}
			}
			if len(reports) > 1 {
				fmt.Fprintf(out, "%s  %s\n", bold(fmt.Sprintf("%8d", total)), bold("total"))
			}
			return nil
		},
	}

	cmd.Flags().StringP("counter", "c", tokenest.Heuristic, "token counter: "+strings.Join(tokenest.Names(), ", "))
	cmd.Flags().BoolP("sections", "s", false, "break each document down by section")
	return cmd
}
