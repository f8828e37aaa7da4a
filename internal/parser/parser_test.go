package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantType string
	}{
		{"a.txt", "*parser.TextParser"},
		{"a.MD", "*parser.MarkdownParser"},
		{"a.markdown", "*parser.MarkdownParser"},
		{"a.csv", "*parser.CSVParser"},
		{"a.htm", "*parser.HTMLParser"},
		{"a.html", "*parser.HTMLParser"},
		{"a.pdf", "*parser.PDFParser"},
		{"a.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, Options{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := fmt.Sprintf("%T", p); got != tt.wantType {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.wantType, got)
		}
	}
}

func TestForFile_PDFOptions(t *testing.T) {
	p, err := ForFile("scan.pdf", Options{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be enabled")
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("image.png", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("image.png") {
		t.Error("expected .png to be unsupported")
	}
	if !IsSupportedExtension("Report.DOCX") {
		t.Error("expected .DOCX to be supported")
	}
}

func TestSupportedExtensions_ReturnsCopy(t *testing.T) {
	exts := SupportedExtensions()
	exts[0] = ".exe"
	if IsSupportedExtension("x.exe") {
		t.Error("expected caller mutation not to affect supported extensions")
	}
}

func TestSectionBuilder_Nesting(t *testing.T) {
	b := newSectionBuilder()
	b.heading(1, "A")
	b.paragraph("a text")
	b.heading(3, "A.x")
	b.paragraph("deep")
	b.heading(2, "A.1")
	b.heading(1, "B")
	b.paragraph("b one")
	b.paragraph("b two")
	tree := b.tree("doc")

	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Children))
	}
	a := tree.Children[0]
	if a.Text != "a text" || len(a.Children) != 2 {
		t.Fatalf("unexpected section A: %+v", a)
	}
	if a.Children[0].Title != "A.x" || a.Children[1].Title != "A.1" {
		t.Errorf("expected A.x and A.1 under A, got %q and %q", a.Children[0].Title, a.Children[1].Title)
	}
	if got := tree.Children[1].Text; got != "b one\n\nb two" {
		t.Errorf("expected joined paragraphs, got %q", got)
	}
}

func TestHTMLParser(t *testing.T) {
	input := `<html><head><title>Guide</title><style>p{}</style></head>
<body>
<nav><p>menu</p></nav>
<p>Lead paragraph.</p>
<h1>Install</h1>
<p>Run   the
installer.</p>
<h2>Linux</h2>
<ul><li>apt</li><li>dnf</li></ul>
<script>var x = 1;</script>
<h1>Use</h1>
<p>Open it.</p>
</body></html>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "Guide" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected lead + 2 h1 sections, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "Lead paragraph." {
		t.Errorf("unexpected lead text %q", tree.Children[0].Text)
	}

	install := tree.Children[1]
	if install.Title != "Install" || install.Text != "Run the installer." {
		t.Errorf("unexpected install section: title=%q text=%q", install.Title, install.Text)
	}
	if len(install.Children) != 1 || install.Children[0].Text != "apt\n\ndnf" {
		t.Errorf("unexpected Linux subsection: %+v", install.Children)
	}
	for _, n := range tree.Children {
		if strings.Contains(n.Text, "menu") || strings.Contains(n.Text, "var x") {
			t.Errorf("expected nav and script content to be skipped, got %q", n.Text)
		}
	}
}

func TestHTMLParser_BareText(t *testing.T) {
	input := `<body><div>Now is the time for all good men.</div><span>More words here</span>
<section><h2>Notes</h2><div>Plain <b>bold</b>text<br>next line</div><p>Para.</p>tail</section></body>`

	tree, err := (&HTMLParser{}).Parse(strings.NewReader(input), "bare.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected lead + Notes sections, got %d", len(tree.Children))
	}
	if got, want := tree.Children[0].Text, "Now is the time for all good men.\n\nMore words here"; got != want {
		t.Errorf("expected lead text %q, got %q", want, got)
	}
	notes := tree.Children[1]
	if notes.Title != "Notes" {
		t.Errorf("expected Notes heading, got %q", notes.Title)
	}
	if want := "Plain boldtext next line\n\nPara.\n\ntail"; notes.Text != want {
		t.Errorf("expected notes text %q, got %q", want, notes.Text)
	}
}

func TestHTMLParser_TitleFallsBackToFilename(t *testing.T) {
	tree, err := (&HTMLParser{}).Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", tree.Title)
	}
}

func TestCSVParser(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,zip\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("smith,22345\n")
	}
	tree, err := (&CSVParser{}).Parse(strings.NewReader(sb.String()), "emps.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "emps" {
		t.Errorf("expected title %q, got %q", "emps", tree.Title)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 batches for 25 rows, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "Rows 2-21" || tree.Children[1].Title != "Rows 22-26" {
		t.Errorf("unexpected batch titles %q, %q", tree.Children[0].Title, tree.Children[1].Title)
	}
	if !strings.Contains(tree.Children[0].Text, "name: smith, zip: 22345") {
		t.Errorf("expected header-labelled cells, got %q", tree.Children[0].Text)
	}
}

func TestCSVParser_RaggedRows(t *testing.T) {
	tree, err := (&CSVParser{}).Parse(strings.NewReader("a,b\n1,2,3\n4\n"), "r.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(tree.Children))
	}
	if !strings.Contains(tree.Children[0].Text, "a: 1, b: 2, 3") {
		t.Errorf("expected extra cell kept without header, got %q", tree.Children[0].Text)
	}
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	tree, err := (&CSVParser{}).Parse(strings.NewReader("a,b\n"), "h.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no sections, got %d", len(tree.Children))
	}
}
