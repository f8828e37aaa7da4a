package doctree

import (
	"reflect"
	"testing"
)

func sampleTree() *DocTree {
	return &DocTree{
		Title: "Doc",
		Children: []*DocNode{
			{
				Title: "Chapter 1",
				Text:  "intro",
				Children: []*DocNode{
					{Title: "Section 1.1", Text: "body"},
					{Text: "untitled"},
				},
			},
			{Title: "Chapter 2"},
		},
	}
}

func TestWalk_Breadcrumbs(t *testing.T) {
	var got [][]string
	sampleTree().Walk(func(_ *DocNode, bc []string) {
		got = append(got, bc)
	})

	want := [][]string{
		{"Chapter 1"},
		{"Chapter 1", "Section 1.1"},
		{"Chapter 1"},
		{"Chapter 2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected breadcrumbs %v, got %v", want, got)
	}
}

func TestWalk_SiblingIsolation(t *testing.T) {
	tree := &DocTree{Children: []*DocNode{
		{Title: "Parent", Children: []*DocNode{{Title: "A"}, {Title: "B"}}},
	}}
	var leaves [][]string
	tree.Walk(func(n *DocNode, bc []string) {
		if len(n.Children) == 0 {
			leaves = append(leaves, bc)
		}
	})
	want := [][]string{{"Parent", "A"}, {"Parent", "B"}}
	if !reflect.DeepEqual(leaves, want) {
		t.Errorf("expected %v, got %v", want, leaves)
	}
}

func TestPlainText(t *testing.T) {
	if got := sampleTree().PlainText(); got != "intro\nbody\nuntitled" {
		t.Errorf("unexpected text %q", got)
	}
	if got := (&DocTree{}).PlainText(); got != "" {
		t.Errorf("expected empty text for empty tree, got %q", got)
	}
}
