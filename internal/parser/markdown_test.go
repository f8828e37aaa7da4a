package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Title != "Title" || h1.Text != "Intro text." {
		t.Errorf("unexpected h1: title=%q text=%q", h1.Title, h1.Text)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA, secB := h1.Children[0], h1.Children[1]
	if secA.Title != "Section A" || secA.Text != "Section A content." {
		t.Errorf("unexpected section A: title=%q text=%q", secA.Title, secA.Text)
	}
	if len(secA.Children) != 1 || secA.Children[0].Title != "Subsection A1" {
		t.Fatalf("expected one h3 'Subsection A1' under Section A, got %+v", secA.Children)
	}
	if secB.Title != "Section B" {
		t.Errorf("expected %q, got %q", "Section B", secB.Title)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Just some plain text.\n\nAnother paragraph here."
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	want := "Just some plain text.\n\nAnother paragraph here."
	if tree.Children[0].Text != want {
		t.Errorf("expected %q, got %q", want, tree.Children[0].Text)
	}
}

func TestMarkdownParser_TextBeforeFirstHeadingKept(t *testing.T) {
	input := "Preamble.\n\n# First\n\nBody."
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "lead.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected preamble plus one heading, got %d children", len(tree.Children))
	}
	if tree.Children[0].Title != "" || tree.Children[0].Text != "Preamble." {
		t.Errorf("unexpected preamble node %+v", tree.Children[0])
	}
	if tree.Children[1].Title != "First" {
		t.Errorf("expected heading %q, got %q", "First", tree.Children[1].Title)
	}
}

func TestMarkdownParser_CodeBlocksAndLists(t *testing.T) {
	input := "# API\n\nEndpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\n- first item\n- second item\n\nMore text after code.\n"
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child, got %d", len(tree.Children))
	}

	text := tree.Children[0].Text
	for _, want := range []string{"GET /api/users", "first item", "second item", "More text after code."} {
		if !strings.Contains(text, want) {
			t.Errorf("expected section text to contain %q, got %q", want, text)
		}
	}
	if strings.Count(text, "first item") != 1 {
		t.Errorf("expected list text once, got %q", text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	tree, err := (&MarkdownParser{}).Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"UPPER.MD", "UPPER"},
	}
	for _, tt := range tests {
		tree, err := (&MarkdownParser{}).Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
