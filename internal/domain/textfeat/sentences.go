package textfeat

import (
	"regexp"
	"strings"

	"github.com/okian/verba/internal/domain/model"
)

var sentenceDelims = regexp.MustCompile(`[.!?]+`)

// Sentences computes basic sentence-level statistics: count, average and
// min/max length in words. Very short sentences can indicate limited
// complexity, very long ones run-on issues; good variation indicates
// natural language use. Empty input yields the zero stats.
func Sentences(text string) model.SentenceStats {
	if strings.TrimSpace(text) == "" {
		return model.SentenceStats{}
	}

	var lengths []int
	for _, s := range sentenceDelims.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			lengths = append(lengths, len(strings.Fields(s)))
		}
	}
	if len(lengths) == 0 {
		return model.SentenceStats{}
	}

	total := 0
	minLen, maxLen := lengths[0], lengths[0]
	for _, n := range lengths {
		total += n
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}

	return model.SentenceStats{
		SentenceCount:     len(lengths),
		AvgSentenceLength: round2(float64(total) / float64(len(lengths))),
		MinSentenceLength: minLen,
		MaxSentenceLength: maxLen,
	}
}
