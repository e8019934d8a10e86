// Package wer computes word error rate between a reference transcript and
// an ASR hypothesis.
//
// WER is the word-level edit distance (substitutions + insertions +
// deletions) divided by the reference length. The edit distance is computed
// by mapping each distinct token to a private-use rune and running a string
// Levenshtein over the encoded forms, so one rune equals one word.
package wer

import (
	"math"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/okian/verba/internal/domain/types"
)

// tokenRuneBase is the start of the Unicode private use area; token codes
// are assigned sequentially from here.
const tokenRuneBase = 0xE000

// Compute returns the word error rate of hypothesis against reference,
// rounded to 4 decimals. The metric is absent when the reference has no
// words: "no reference" is not an error. A hypothesis longer than the
// reference can push the rate above 1.0; callers clamp, this package
// reports the raw ratio.
func Compute(reference, hypothesis string) types.Metric {
	ref := tokenize(reference)
	if len(ref) == 0 {
		return types.AbsentMetric()
	}
	hyp := tokenize(hypothesis)

	codes := make(map[string]rune, len(ref)+len(hyp))
	distance := matchr.Levenshtein(encode(ref, codes), encode(hyp, codes))

	rate := float64(distance) / float64(len(ref))
	return types.MetricOf(round4(rate))
}

// tokenize lower-cases, splits on whitespace and strips surrounding
// sentence punctuation so "Hello," and "hello" align.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, `.,!?;:"'`); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// encode maps tokens onto runes, assigning a fresh code per distinct token.
func encode(tokens []string, codes map[string]rune) string {
	var b strings.Builder
	b.Grow(len(tokens))
	for _, tok := range tokens {
		code, ok := codes[tok]
		if !ok {
			code = rune(tokenRuneBase + len(codes))
			codes[tok] = code
		}
		b.WriteRune(code)
	}
	return b.String()
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
