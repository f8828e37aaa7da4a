package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dgallion1/tokest/internal/tokenest"
)

// WordStat is the estimate for one space-separated word of the input.
type WordStat struct {
	Position    int    `json:"position"`
	Word        string `json:"word"`
	Cleaned     string `json:"cleaned"`
	Syllables   int    `json:"syllables"`
	Punctuation int    `json:"punctuation"`
}

// Tokens is the word's contribution to tokenest.EstimateTokens.
func (w WordStat) Tokens() int { return w.Syllables + w.Punctuation }

// Words splits text the same way tokenest.EstimateTokens does and reports
// each word. The Tokens of all entries sum to EstimateTokens(text).
func Words(text string) []WordStat {
	parts := strings.Split(text, " ")
	stats := make([]WordStat, len(parts))
	for i, w := range parts {
		stats[i] = WordStat{
			Position:    i,
			Word:        w,
			Cleaned:     tokenest.CleanWord(w),
			Syllables:   tokenest.SyllableCount(w),
			Punctuation: tokenest.PunctuationCount(w),
		}
	}
	return stats
}

// Compare orders two values like strings.Compare: negative if a sorts first.
type Compare[T any] func(a, b T) int

// ByPosition keeps input order.
func ByPosition(a, b WordStat) int { return a.Position - b.Position }

// ByWord orders words alphabetically ignoring case, then by raw bytes so
// "Now" sorts before "now", then by position.
func ByWord(a, b WordStat) int {
	if c := strings.Compare(strings.ToLower(a.Word), strings.ToLower(b.Word)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Word, b.Word); c != 0 {
		return c
	}
	return ByPosition(a, b)
}

// BySyllables puts the longest words first, ties by position.
func BySyllables(a, b WordStat) int {
	if a.Syllables != b.Syllables {
		return b.Syllables - a.Syllables
	}
	return ByPosition(a, b)
}

var wordOrders = map[string]Compare[WordStat]{
	"position":  ByPosition,
	"word":      ByWord,
	"syllables": BySyllables,
}

// WordOrder resolves an ordering by name; "" means position.
func WordOrder(name string) (Compare[WordStat], error) {
	if name == "" {
		return ByPosition, nil
	}
	cmp, ok := wordOrders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown word order %q (want position, word or syllables)", name)
	}
	return cmp, nil
}

// Sort orders items in place with cmp. The sort is stable.
func Sort[T any](items []T, cmp Compare[T]) {
	slices.SortStableFunc(items, cmp)
}
