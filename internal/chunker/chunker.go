package chunker

import (
	"strings"

	"github.com/dgallion1/tokest/internal/doctree"
	"github.com/dgallion1/tokest/internal/tokenest"
)

// Config controls chunking behavior. Sizes are in tokens as measured by Count.
type Config struct {
	ChunkSize    int                // Target chunk size.
	ChunkOverlap int                // Overlap carried from the end of one chunk into the next.
	MinChunk     int                // Chunks smaller than this are dropped.
	Count        tokenest.CountFunc // Token counter; nil means tokenest.EstimateTokens.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
		Count:        tokenest.EstimateTokens,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = 0
	}
	if c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = c.ChunkSize / 2
	}
	if c.MinChunk < 0 {
		c.MinChunk = 0
	}
	if c.Count == nil {
		c.Count = def.Count
	}
	return c
}

// ChunkTree walks a DocTree and produces structure-aware chunks, numbered
// in document order.
func ChunkTree(tree *doctree.DocTree, cfg Config) []doctree.Chunk {
	cfg = cfg.withDefaults()

	var chunks []doctree.Chunk
	tree.Walk(func(node *doctree.DocNode, breadcrumb []string) {
		if node.Text == "" {
			return
		}
		parts := []string{node.Text}
		if cfg.Count(node.Text) > cfg.ChunkSize {
			parts = splitText(node.Text, cfg)
		}
		for _, part := range parts {
			tokens := cfg.Count(part)
			if tokens < cfg.MinChunk {
				continue
			}
			chunks = append(chunks, doctree.Chunk{
				Text:       part,
				Index:      len(chunks),
				Tokens:     tokens,
				Breadcrumb: copyBreadcrumb(breadcrumb),
				PageStart:  node.Page,
				PageEnd:    node.Page,
			})
		}
	})
	return chunks
}

// ChunkText splits free text (no structure) into chunks.
func ChunkText(text string, cfg Config) []doctree.Chunk {
	tree := &doctree.DocTree{Children: []*doctree.DocNode{{Text: text}}}
	return ChunkTree(tree, cfg)
}

// splitText packs paragraphs into chunks of about cfg.ChunkSize, falling back
// to sentences for paragraphs that are too big on their own.
func splitText(text string, cfg Config) []string {
	p := packer{cfg: cfg, sep: "\n\n"}
	for _, para := range splitByParagraphs(text) {
		if cfg.Count(para) > cfg.ChunkSize {
			p.flush()
			sp := packer{cfg: cfg, sep: " "}
			for _, sent := range splitSentences(para) {
				sp.add(sent)
			}
			p.out = append(p.out, sp.finish()...)
			continue
		}
		p.add(para)
	}
	return p.finish()
}

// packer accumulates pieces until the next one would overflow the budget.
type packer struct {
	cfg     Config
	sep     string
	current strings.Builder
	tokens  int
	out     []string
}

func (p *packer) add(piece string) {
	n := p.cfg.Count(piece)
	if p.tokens > 0 && p.tokens+n > p.cfg.ChunkSize {
		prev := p.current.String()
		p.out = append(p.out, prev)
		p.current.Reset()
		p.tokens = 0
		if overlap := overlapText(prev, p.cfg); overlap != "" {
			p.current.WriteString(overlap)
			p.tokens = p.cfg.Count(overlap)
		}
	}
	if p.current.Len() > 0 {
		p.current.WriteString(p.sep)
	}
	p.current.WriteString(piece)
	p.tokens += n
}

// flush emits the pending chunk without carrying overlap forward.
func (p *packer) flush() {
	if p.current.Len() > 0 {
		p.out = append(p.out, p.current.String())
	}
	p.current.Reset()
	p.tokens = 0
}

func (p *packer) finish() []string {
	p.flush()
	return p.out
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences breaks after '.', '!' or '?' followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 < len(text) && text[i+1] == ' ' {
				if s := strings.TrimSpace(text[start : i+1]); s != "" {
					sentences = append(sentences, s)
				}
				start = i + 1
			}
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// overlapText returns the shortest run of trailing words of text worth at
// least cfg.ChunkOverlap tokens, or "" if that would be all of text.
func overlapText(text string, cfg Config) string {
	if cfg.ChunkOverlap <= 0 {
		return ""
	}
	words := strings.Fields(text)
	for i := len(words) - 1; i > 0; i-- {
		tail := strings.Join(words[i:], " ")
		if cfg.Count(tail) >= cfg.ChunkOverlap {
			return tail
		}
	}
	return ""
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
