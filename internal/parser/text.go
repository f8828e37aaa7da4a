package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
)

// TextParser handles plain text. Blank lines separate paragraphs and each
// paragraph becomes an untitled section.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	tree := &doctree.DocTree{Title: titleFromFilename(filename, ".txt")}
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			tree.Children = append(tree.Children, &doctree.DocNode{Text: strings.Join(lines, "\n")})
			lines = lines[:0]
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	flush()

	return tree, nil
}
