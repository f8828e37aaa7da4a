package doctree

import "strings"

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Chunk is a token-bounded text segment with structural context.
type Chunk struct {
	Text       string   `json:"text"`
	Index      int      `json:"index"`
	Tokens     int      `json:"tokens"`
	Breadcrumb []string `json:"breadcrumb,omitempty"` // Heading hierarchy, e.g. ["Results", "Revenue", "Q4"]
	PageStart  int      `json:"page_start,omitempty"`
	PageEnd    int      `json:"page_end,omitempty"`
}

// Walk visits every node depth-first, passing the heading path that leads
// to it (including the node's own title).
func (t *DocTree) Walk(fn func(node *DocNode, breadcrumb []string)) {
	var walk func(nodes []*DocNode, parent []string)
	walk = func(nodes []*DocNode, parent []string) {
		for _, n := range nodes {
			bc := parent
			if n.Title != "" {
				bc = append(append([]string(nil), parent...), n.Title)
			}
			fn(n, bc)
			walk(n.Children, bc)
		}
	}
	walk(t.Children, nil)
}

// PlainText joins the text of every node, separated by newlines.
func (t *DocTree) PlainText() string {
	var sb strings.Builder
	t.Walk(func(n *DocNode, _ []string) {
		if n.Text == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(n.Text)
	})
	return sb.String()
}
