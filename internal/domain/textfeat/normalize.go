// Package textfeat extracts text features used by the scoring pipeline:
// transcript normalization, filler-word detection, speaking rate and
// sentence statistics. All functions are pure and total.
package textfeat

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
)

// Normalize cleans a raw transcript for feature extraction: runs of
// whitespace collapse to one space, whitespace before sentence punctuation
// is removed and the result is trimmed. Casing and punctuation are preserved
// because grammar checking depends on them. Empty or all-whitespace input
// yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
