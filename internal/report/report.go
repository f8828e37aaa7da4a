// Package report turns text and parsed documents into token estimates broken
// down by word or by section.
package report

import (
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
	"github.com/dgallion1/tokest/internal/tokenest"
)

// Report is the token estimate for a whole document.
type Report struct {
	Title    string    `json:"title"`
	Counter  string    `json:"counter"`
	Tokens   int       `json:"tokens"`
	Words    int       `json:"words"`
	Sections []Section `json:"sections"`
}

// Section is one node of the document that carries text.
type Section struct {
	Path   []string `json:"path,omitempty"`
	Page   int      `json:"page,omitempty"`
	Tokens int      `json:"tokens"`
	Words  int      `json:"words"`
}

// Name joins the section path for display.
func (s Section) Name() string {
	if len(s.Path) == 0 {
		return "(untitled)"
	}
	return strings.Join(s.Path, " > ")
}

// Build estimates every text-bearing node of tree with count. counterName is
// recorded in the report as-is.
func Build(tree *doctree.DocTree, counterName string, count tokenest.CountFunc) Report {
	if count == nil {
		count = tokenest.EstimateTokens
	}
	rep := Report{
		Title:    tree.Title,
		Counter:  counterName,
		Sections: []Section{},
	}
	tree.Walk(func(n *doctree.DocNode, breadcrumb []string) {
		if n.Text == "" {
			return
		}
		sec := Section{
			Path:   append([]string(nil), breadcrumb...),
			Page:   n.Page,
			Tokens: count(n.Text),
			Words:  len(strings.Fields(n.Text)),
		}
		rep.Sections = append(rep.Sections, sec)
		rep.Tokens += sec.Tokens
		rep.Words += sec.Words
	})
	return rep
}

// SectionsByTokens puts the largest sections first, ties by path.
func SectionsByTokens(a, b Section) int {
	if a.Tokens != b.Tokens {
		return b.Tokens - a.Tokens
	}
	return SectionsByPath(a, b)
}

// SectionsByPath orders sections by their joined heading path.
func SectionsByPath(a, b Section) int {
	return strings.Compare(strings.Join(a.Path, "\x00"), strings.Join(b.Path, "\x00"))
}
