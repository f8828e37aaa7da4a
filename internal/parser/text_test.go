package parser

import (
	"strings"
	"testing"
)

func TestTextParser_Paragraphs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lines within a paragraph stay together",
			input: "First line one.\nFirst line two.\n\nSecond paragraph.\n\nThird paragraph.",
			want:  []string{"First line one.\nFirst line two.", "Second paragraph.", "Third paragraph."},
		},
		{
			name:  "single line",
			input: "Hello world",
			want:  []string{"Hello world"},
		},
		{
			name:  "runs of blank lines",
			input: "Para one.\n\n\n\nPara two.",
			want:  []string{"Para one.", "Para two."},
		},
		{
			name:  "whitespace-only lines are blank",
			input: "Para one.\n   \t\nPara two.",
			want:  []string{"Para one.", "Para two."},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	p := &TextParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader(tt.input), "notes.txt")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if tree.Title != "notes" {
			t.Errorf("%s: expected title %q, got %q", tt.name, "notes", tree.Title)
		}
		if len(tree.Children) != len(tt.want) {
			t.Fatalf("%s: expected %d children, got %d", tt.name, len(tt.want), len(tree.Children))
		}
		for i, w := range tt.want {
			if tree.Children[i].Text != w {
				t.Errorf("%s: child[%d] expected %q, got %q", tt.name, i, w, tree.Children[i].Text)
			}
		}
	}
}

func TestTextParser_TitleDropsDirectory(t *testing.T) {
	tree, err := (&TextParser{}).Parse(strings.NewReader("x"), "some/dir/readme.TXT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "readme" {
		t.Errorf("expected title %q, got %q", "readme", tree.Title)
	}
}
