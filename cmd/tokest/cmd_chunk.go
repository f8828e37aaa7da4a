package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tokest/internal/chunker"
	"github.com/dgallion1/tokest/internal/tokenest"
	"github.com/spf13/cobra"
)

func newChunkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunk FILE",
		Short: "Split a document into token-bounded chunks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("counter")
			size, _ := cmd.Flags().GetInt("size")
			overlap, _ := cmd.Flags().GetInt("overlap")
			jsonOut, _ := cmd.Flags().GetBool("json")

			count, err := tokenest.Lookup(name)
			if err != nil {
				return err
			}
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}

			chunks := chunker.ChunkTree(tree, chunker.Config{
				ChunkSize:    size,
				ChunkOverlap: overlap,
				MinChunk:     1,
				Count:        count,
			})

			if jsonOut {
				return writeJSON(cmd, chunks)
			}

			out := cmd.OutOrStdout()
			for _, c := range chunks {
				header := fmt.Sprintf("[%d] %d tokens", c.Index, c.Tokens)
				if len(c.Breadcrumb) > 0 {
					header += "  " + cyan(strings.Join(c.Breadcrumb, " > "))
				}
				fmt.Fprintln(out, bold(header))
				fmt.Fprintln(out, c.Text)
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, gray(fmt.Sprintf("%d chunks", len(chunks))))
			return nil
		},
	}

	cmd.Flags().StringP("counter", "c", tokenest.Heuristic, "token counter: "+strings.Join(tokenest.Names(), ", "))
	cmd.Flags().Int("size", 1500, "target chunk size in tokens")
	cmd.Flags().Int("overlap", 200, "tokens carried over between chunks")
	return cmd
}
