package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
)

// csvBatch is the number of data rows rendered into one section.
const csvBatch = 20

// CSVParser handles CSV files. The first row is the header; data rows are
// rendered as "header: value" pairs, csvBatch rows per section.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	tree := &doctree.DocTree{Title: titleFromFilename(filename, ".csv")}
	if len(records) == 0 {
		return tree, nil
	}

	headers := records[0]
	rows := records[1:]
	for start := 0; start < len(rows); start += csvBatch {
		end := min(start+csvBatch, len(rows))

		var sb strings.Builder
		sb.WriteString("Headers: " + strings.Join(headers, ", ") + "\n\n")
		for _, row := range rows[start:end] {
			cells := make([]string, len(row))
			for j, cell := range row {
				if j < len(headers) {
					cells[j] = headers[j] + ": " + cell
				} else {
					cells[j] = cell
				}
			}
			sb.WriteString(strings.Join(cells, ", "))
			sb.WriteString("\n")
		}

		// Row numbers are 1-indexed and count the header line.
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title: fmt.Sprintf("Rows %d-%d", start+2, end+1),
			Text:  sb.String(),
		})
	}

	return tree, nil
}
