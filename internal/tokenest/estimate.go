// Package tokenest estimates language-model token counts for text using a
// syllable heuristic. Every function here is pure and total: no input makes
// them fail.
package tokenest

import (
	"regexp"
	"strings"
)

// Punctuation is the set of characters counted as one token each, wherever
// they appear in the input.
const Punctuation = `".,-';:!@#$%&*()+`

var nonLetter = regexp.MustCompile(`[^a-z]`)

// suffixes are tried in order; only the first match is stripped.
var suffixes = []string{"es", "ed", "e"}

// EstimateTokens returns the token estimate for text: the syllable count of
// every space-separated word plus the number of punctuation characters.
// An empty string is a single empty word and estimates to 1.
func EstimateTokens(text string) int {
	tokens := 0
	for _, word := range strings.Split(text, " ") {
		tokens += SyllableCount(word)
	}
	return tokens + PunctuationCount(text)
}

// SyllableCount estimates the spoken syllables in word. The result is never
// below 1.
func SyllableCount(word string) int {
	cw := CleanWord(word)

	for _, suffix := range suffixes {
		if strings.HasSuffix(cw, suffix) {
			cw = cw[:len(cw)-len(suffix)]
			break
		}
	}

	count := 0
	for i := 0; i < len(cw); i++ {
		switch cw[i] {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			count++
		}
	}

	count -= strings.Count(cw, "iou")
	if strings.HasSuffix(cw, "ea") || strings.HasSuffix(cw, "e") {
		count--
	}

	return max(1, count)
}

// CleanWord lowercases word and drops everything outside a-z.
func CleanWord(word string) string {
	return nonLetter.ReplaceAllString(strings.ToLower(word), "")
}

// PunctuationCount counts occurrences of Punctuation characters in text.
func PunctuationCount(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(Punctuation, text[i]) >= 0 {
			n++
		}
	}
	return n
}
