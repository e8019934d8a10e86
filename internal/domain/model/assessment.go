// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/verba/internal/domain/types"
)

// MaxDetailItems caps the grammar finding and filler word detail lists
// carried in responses.
const MaxDetailItems = 20

// SpeechSignals carries the raw per-sample signals produced by the
// transcription boundary. Immutable after construction.
type SpeechSignals struct {
	Transcript  string  // raw transcript as emitted by the engine
	WordCount   int     // non-negative word count
	DurationSec float64 // non-negative audio duration in seconds
	Language    string  // BCP-47-ish language tag, e.g. "en"
}

// GrammarFinding is a single finding reported by the grammar engine.
// Suggestions holds at most three suggested replacements.
type GrammarFinding struct {
	Message     string
	RuleID      string
	Context     string
	Offset      int
	Length      int
	Suggestions []string
}

// FillerOccurrence is a matched literal filler token or phrase, e.g. "um"
// or "you know".
type FillerOccurrence string

// SentenceStats summarizes sentence structure of a transcript.
type SentenceStats struct {
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	MinSentenceLength int     `json:"min_sentence_length"`
	MaxSentenceLength int     `json:"max_sentence_length"`
}

// PenaltyBreakdown holds the four normalized [0,1] penalties. The values are
// only ever combined by the composite scorer.
type PenaltyBreakdown struct {
	Grammar float64 `json:"grammar"`
	Fillers float64 `json:"fillers"`
	WER     float64 `json:"wer"`
	Fluency float64 `json:"fluency"`
}

// ScoreResult is the terminal artifact of the scoring pipeline.
type ScoreResult struct {
	FinalScore  float64
	Penalties   PenaltyBreakdown
	Explanation string
}

// Submission is a scoring request after boundary mapping: typed signals plus
// an optional reference transcript for WER.
type Submission struct {
	Signals             SpeechSignals
	ReferenceTranscript string
}

// Assessment aggregates everything returned to the caller for one sample.
// Constructed once per request, never mutated.
type Assessment struct {
	Signals           SpeechSignals
	GrammarErrorCount int
	GrammarFindings   []GrammarFinding // capped at 20 entries
	FillerCount       int
	FillerWords       []FillerOccurrence // capped at 20 entries, pattern order
	WER               types.Metric
	WPM               types.Metric
	Sentences         SentenceStats
	Result            ScoreResult
	ModelVersion      string
	GeneratedAt       time.Time
}
