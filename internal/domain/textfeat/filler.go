package textfeat

import (
	"regexp"
	"strings"

	"github.com/okian/verba/internal/domain/model"
)

// fillerPatterns is the fixed, ordered list of disfluency markers. Order
// matters twice: multi-word phrases run before single-word forms so that
// "you know" is counted as one unit rather than partial matches, and the
// result list follows this pattern order, not text order. The discourse
// markers at the tail ("like", "well", "so", "just", ...) also have
// legitimate lexical uses; the detector is intentionally over-inclusive and
// makes no semantic disambiguation.
var fillerPatterns = []*regexp.Regexp{
	// Multi-word fillers
	regexp.MustCompile(`\byou know\b`),
	regexp.MustCompile(`\bi mean\b`),
	regexp.MustCompile(`\bkind of\b`),
	regexp.MustCompile(`\bkinda\b`),
	regexp.MustCompile(`\bsort of\b`),
	regexp.MustCompile(`\bsorta\b`),
	regexp.MustCompile(`\byou see\b`),
	regexp.MustCompile(`\blet me see\b`),
	regexp.MustCompile(`\blet's see\b`),

	// Single-word fillers
	regexp.MustCompile(`\bum+\b`),  // um, umm, ummm
	regexp.MustCompile(`\buh+\b`),  // uh, uhh, uhhh
	regexp.MustCompile(`\berm+\b`), // erm, ermm
	regexp.MustCompile(`\bhmm+\b`), // hmm, hmmm
	regexp.MustCompile(`\bah+\b`),  // ah, ahh
	regexp.MustCompile(`\boh+\b`),  // oh, ohh
	regexp.MustCompile(`\blike\b`),
	regexp.MustCompile(`\bbasically\b`),
	regexp.MustCompile(`\bactually\b`),
	regexp.MustCompile(`\bliterally\b`),
	regexp.MustCompile(`\bwell\b`),
	regexp.MustCompile(`\bso\b`),
	regexp.MustCompile(`\bjust\b`),
}

// DetectFillers counts filler words and verbal disfluencies in text and
// returns the literal matched tokens. Matching happens on a lowercased,
// whitespace-collapsed copy; the caller's text is never mutated. Each
// pattern is evaluated independently over the whole text and all matches
// are concatenated in pattern-list order. Empty input returns (0, nil).
func DetectFillers(text string) (int, []model.FillerOccurrence) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	normalized := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")

	var detected []model.FillerOccurrence
	for _, pattern := range fillerPatterns {
		for _, match := range pattern.FindAllString(normalized, -1) {
			detected = append(detected, model.FillerOccurrence(match))
		}
	}

	return len(detected), detected
}
