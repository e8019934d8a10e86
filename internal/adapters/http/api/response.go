package api

import (
	"time"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/internal/domain/types"
)

// assessmentResponse mirrors the OpenAPI schema for scoring responses.
type assessmentResponse struct {
	ASR            asrSection          `json:"asr"`
	Metrics        metricsSection      `json:"metrics"`
	GrammarDetails []grammarDetail     `json:"grammar_details"`
	FillerWords    []string            `json:"filler_words"`
	SentenceStats  model.SentenceStats `json:"sentence_stats"`
	Explanation    string              `json:"explanation"`
	ModelVersion   string              `json:"model_version"`
	GeneratedAt    string              `json:"generated_at"`
}

type asrSection struct {
	Transcript  string  `json:"transcript"`
	WordCount   int     `json:"word_count"`
	DurationSec float64 `json:"duration_sec"`
	Language    string  `json:"language"`
}

type metricsSection struct {
	GrammarErrors int                    `json:"grammar_errors"`
	Fillers       int                    `json:"fillers"`
	WER           types.Metric           `json:"wer"`
	WPM           types.Metric           `json:"wpm"`
	Normalized    model.PenaltyBreakdown `json:"normalized"`
	FinalScore    float64                `json:"final_score"`
}

type grammarDetail struct {
	Message     string   `json:"message"`
	RuleID      string   `json:"rule_id"`
	Context     string   `json:"context"`
	Offset      int      `json:"offset"`
	Length      int      `json:"length"`
	Suggestions []string `json:"suggestions"`
}

// toResponse flattens a domain assessment into the wire shape.
func toResponse(a model.Assessment) assessmentResponse {
	details := make([]grammarDetail, len(a.GrammarFindings))
	for i, f := range a.GrammarFindings {
		details[i] = grammarDetail{
			Message:     f.Message,
			RuleID:      f.RuleID,
			Context:     f.Context,
			Offset:      f.Offset,
			Length:      f.Length,
			Suggestions: f.Suggestions,
		}
	}

	fillers := make([]string, len(a.FillerWords))
	for i, w := range a.FillerWords {
		fillers[i] = string(w)
	}

	return assessmentResponse{
		ASR: asrSection{
			Transcript:  a.Signals.Transcript,
			WordCount:   a.Signals.WordCount,
			DurationSec: a.Signals.DurationSec,
			Language:    a.Signals.Language,
		},
		Metrics: metricsSection{
			GrammarErrors: a.GrammarErrorCount,
			Fillers:       a.FillerCount,
			WER:           a.WER,
			WPM:           a.WPM,
			Normalized:    a.Result.Penalties,
			FinalScore:    a.Result.FinalScore,
		},
		GrammarDetails: details,
		FillerWords:    fillers,
		SentenceStats:  a.Sentences,
		Explanation:    a.Result.Explanation,
		ModelVersion:   a.ModelVersion,
		GeneratedAt:    a.GeneratedAt.Format(time.RFC3339),
	}
}
