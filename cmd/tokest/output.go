package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
	"github.com/dgallion1/tokest/internal/parser"
	"github.com/dgallion1/tokest/internal/pipeline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput joins args with spaces, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// loadTree parses a file with the matching document parser. Files with
// an unknown extension are read as a single block of plain text.
func loadTree(path string) (*doctree.DocTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !parser.IsSupportedExtension(path) {
		return &doctree.DocTree{
			Title:    path,
			Children: []*doctree.DocNode{{Text: string(data)}},
		}, nil
	}
	return pipeline.ParseDocument(data, path, "", parser.Options{PDFFallbackPdftotext: true})
}
