// Package scoring converts extracted speech features into a normalized
// 0-100 proficiency score.
//
// Every feature is first mapped onto a penalty in [0, 1], where 0 means no
// deduction and 1 the maximum deduction, via calibrated piecewise-linear
// curves. The composite score is 100 minus the weighted penalty sum:
// grammar 35% (strongest proficiency indicator), fillers 25% (fluency and
// confidence), WER 20% (accuracy when a reference transcript exists) and
// speaking rate 20% (comfort and automaticity).
//
// All functions here are pure, total and deterministic: no input, including
// zero word counts and absent metrics, produces an error.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/internal/domain/types"
)

// Input carries the raw signals entering the scoring pipeline.
type Input struct {
	GrammarErrors int
	FillerCount   int
	WordCount     int
	WER           types.Metric
	WPM           types.Metric
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithCalibration replaces the embedded default calibration.
func WithCalibration(c Calibration) Option {
	return func(s *Scorer) {
		s.cal = c
	}
}

// Scorer derives penalties and the composite score from raw signals.
// Scorer is read-only after construction and safe for concurrent use.
type Scorer struct {
	cal Calibration
}

// New constructs a Scorer, validating the calibration.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{cal: DefaultCalibration()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cal.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Calibration returns the active calibration.
func (s *Scorer) Calibration() Calibration {
	return s.cal
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}

// GrammarPenalty normalizes a grammar error count against the word count.
// The count is converted to errors per 100 words (GER) and scaled linearly
// so the penalty saturates at MaxGrammarErrorsPer100. A non-positive word
// count yields zero: no evidence, no deduction.
func (s *Scorer) GrammarPenalty(errorCount, wordCount int) float64 {
	if wordCount <= 0 {
		return 0.0
	}
	ger := float64(errorCount) / float64(wordCount) * 100.0
	return clamp01(ger / s.cal.MaxGrammarErrorsPer100)
}

// FillerPenalty normalizes a filler count against the word count, same
// shape as GrammarPenalty with the filler rate saturating at
// MaxFillersPer100.
func (s *Scorer) FillerPenalty(fillerCount, wordCount int) float64 {
	if wordCount <= 0 {
		return 0.0
	}
	rate := float64(fillerCount) / float64(wordCount) * 100.0
	return clamp01(rate / s.cal.MaxFillersPer100)
}

// WERPenalty normalizes a word error rate. Absent WER (no reference
// transcript, or the computation failed upstream) and negative values
// contribute no penalty.
func (s *Scorer) WERPenalty(wer types.Metric) float64 {
	if !wer.Valid || wer.Value < 0 {
		return 0.0
	}
	return clamp01(wer.Value / s.cal.MaxWER)
}

// FluencyPenalty maps speaking rate onto a V-shaped penalty around the
// ideal band [IdealWPMMin, IdealWPMMax], which carries zero penalty. Slower
// rates ramp linearly to 1.0 at VerySlowWPM, faster ones to 1.0 at
// VeryFastWPM; beyond those points the penalty stays clamped at 1.0. Both
// extremes degrade the score: too slow suggests struggle, too fast reduced
// clarity.
func (s *Scorer) FluencyPenalty(wpm types.Metric) float64 {
	if !wpm.Valid || wpm.Value <= 0 {
		return 0.0
	}

	v := wpm.Value
	switch {
	case v >= s.cal.IdealWPMMin && v <= s.cal.IdealWPMMax:
		return 0.0
	case v < s.cal.IdealWPMMin:
		return clamp01((s.cal.IdealWPMMin - v) / (s.cal.IdealWPMMin - s.cal.VerySlowWPM))
	default:
		return clamp01((v - s.cal.IdealWPMMax) / (s.cal.VeryFastWPM - s.cal.IdealWPMMax))
	}
}

// FinalScore combines the four penalties into a [0, 100] score rounded to
// 2 decimals. Each penalty is clamped to [0, 1] again here so that callers
// passing out-of-range values still receive a bounded score.
func (s *Scorer) FinalScore(p model.PenaltyBreakdown) float64 {
	total := clamp01(p.Grammar)*s.cal.Weights.Grammar +
		clamp01(p.Fillers)*s.cal.Weights.Fillers +
		clamp01(p.WER)*s.cal.Weights.WER +
		clamp01(p.Fluency)*s.cal.Weights.Fluency

	score := 100.0 - total*100.0
	return round2(math.Max(0.0, math.Min(100.0, score)))
}

// Explain renders the fixed, parseable breakdown string reporting each
// component's point deduction and the final score. Deductions always carry
// one decimal and the final score at least one, so "Score: 100.0/100" and
// "Grammar: -7.0 pts" rather than bare integers.
func (s *Scorer) Explain(p model.PenaltyBreakdown, final float64) string {
	return fmt.Sprintf(
		"Score: %s/100 | Grammar: -%.1f pts | Fillers: -%.1f pts | WER: -%.1f pts | Fluency: -%.1f pts",
		formatScore(final),
		round1(clamp01(p.Grammar)*s.cal.Weights.Grammar*100),
		round1(clamp01(p.Fillers)*s.cal.Weights.Fillers*100),
		round1(clamp01(p.WER)*s.cal.Weights.WER*100),
		round1(clamp01(p.Fluency)*s.cal.Weights.Fluency*100),
	)
}

// formatScore renders a 2-decimal-rounded score with its trailing zeros
// trimmed but never below one decimal place.
func formatScore(x float64) string {
	out := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// Score runs the full penalty normalization and composition for one sample.
func (s *Scorer) Score(in Input) model.ScoreResult {
	p := model.PenaltyBreakdown{
		Grammar: s.GrammarPenalty(in.GrammarErrors, in.WordCount),
		Fillers: s.FillerPenalty(in.FillerCount, in.WordCount),
		WER:     s.WERPenalty(in.WER),
		Fluency: s.FluencyPenalty(in.WPM),
	}
	final := s.FinalScore(p)
	return model.ScoreResult{
		FinalScore:  final,
		Penalties:   p,
		Explanation: s.Explain(p, final),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
