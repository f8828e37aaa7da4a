package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
)

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tweaks parser behavior for formats that need it.
type Options struct {
	PDFFallbackPdftotext bool
}

var supported = []string{".txt", ".md", ".markdown", ".csv", ".html", ".htm", ".pdf", ".docx"}

// SupportedExtensions lists the file extensions with a parser.
func SupportedExtensions() []string {
	return append([]string(nil), supported...)
}

// ForFile returns the parser for filename's extension.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension reports whether filename has a parser.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range supported {
		if s == ext {
			return true
		}
	}
	return false
}

// titleFromFilename drops the directory and any of the given extensions.
func titleFromFilename(filename string, exts ...string) string {
	name := filepath.Base(filename)
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// sectionBuilder nests text under the most recent heading of a lower level.
// Markdown, HTML and DOCX all produce trees through it.
type sectionBuilder struct {
	root  *doctree.DocNode
	stack []openSection
	text  strings.Builder
}

type openSection struct {
	node  *doctree.DocNode
	level int
}

func newSectionBuilder() *sectionBuilder {
	root := &doctree.DocNode{}
	return &sectionBuilder{
		root:  root,
		stack: []openSection{{node: root, level: 0}},
	}
}

// heading opens a section at level (1-6), closing any at the same depth or deeper.
func (b *sectionBuilder) heading(level int, title string) {
	b.flush()
	node := &doctree.DocNode{Title: title}
	for len(b.stack) > 1 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	parent := b.stack[len(b.stack)-1].node
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, openSection{node: node, level: level})
}

// paragraph appends a block of text to the open section.
func (b *sectionBuilder) paragraph(t string) {
	if t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

func (b *sectionBuilder) flush() {
	t := strings.TrimSpace(b.text.String())
	b.text.Reset()
	if t == "" {
		return
	}
	top := b.stack[len(b.stack)-1].node
	if top.Text != "" {
		top.Text += "\n\n" + t
	} else {
		top.Text = t
	}
}

// tree finishes the document. Text seen before any heading becomes a leading
// untitled section.
func (b *sectionBuilder) tree(title string) *doctree.DocTree {
	b.flush()
	tree := &doctree.DocTree{Title: title, Children: b.root.Children}
	if b.root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: b.root.Text}}, tree.Children...)
	}
	return tree
}
