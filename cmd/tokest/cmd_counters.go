package main

import (
	"github.com/dgallion1/tokest/internal/tokenest"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newCountersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counters",
		Short: "List available token counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			type counterInfo struct {
				Name      string             `json:"name"`
				Signature tokenest.Signature `json:"signature"`
			}
			var infos []counterInfo
			for _, name := range tokenest.Names() {
				fn, err := tokenest.Lookup(name)
				if err != nil {
					return err
				}
				infos = append(infos, counterInfo{Name: name, Signature: tokenest.Describe(fn)})
			}

			if jsonOut {
				return writeJSON(cmd, infos)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Counter", "Function"})
			table.SetBorder(false)
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			for _, info := range infos {
				table.Append([]string{green(info.Name), info.Signature.String()})
			}
			table.Render()
			return nil
		},
	}
}
