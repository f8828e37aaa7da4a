package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLParser handles HTML files. Headings h1-h6 open sections; text comes
// from paragraph-like elements, skipping page chrome and scripts.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := titleFromFilename(filename, ".html", ".htm")
	if t := find(doc, atom.Title); t != nil {
		if s := nodeText(t); s != "" {
			title = s
		}
	}

	b := newSectionBuilder()

	// Loose text inside containers such as div or section accumulates here
	// until the next block boundary.
	var loose strings.Builder
	flushLoose := func() {
		b.paragraph(strings.Join(strings.Fields(loose.String()), " "))
		loose.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			loose.WriteString(n.Data)
			return
		case html.ElementNode:
			if level := htmlHeadingLevel(n.DataAtom); level > 0 {
				flushLoose()
				b.heading(level, nodeText(n))
				return
			}
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Nav, atom.Footer, atom.Header, atom.Noscript:
				return
			case atom.P, atom.Li, atom.Td, atom.Th, atom.Blockquote, atom.Pre:
				flushLoose()
				b.paragraph(nodeText(n))
				return
			case atom.Br:
				loose.WriteByte(' ')
				return
			}
			if inlineElements[n.DataAtom] {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				return
			}
			flushLoose()
			defer flushLoose()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := find(doc, atom.Body); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	flushLoose()

	return b.tree(title), nil
}

// inlineElements continue the surrounding run of text instead of starting
// a new paragraph.
var inlineElements = map[atom.Atom]bool{
	atom.A: true, atom.Abbr: true, atom.B: true, atom.Cite: true, atom.Code: true,
	atom.Em: true, atom.I: true, atom.Kbd: true, atom.Label: true, atom.Mark: true,
	atom.Q: true, atom.S: true, atom.Small: true, atom.Span: true, atom.Strong: true,
	atom.Sub: true, atom.Sup: true, atom.Time: true, atom.U: true,
}

func htmlHeadingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// find returns the first element with the given tag, depth-first.
func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, a); f != nil {
			return f
		}
	}
	return nil
}
