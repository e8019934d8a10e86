package textfeat

import (
	"math"

	"github.com/okian/verba/internal/domain/types"
)

const secondsPerMinute = 60.0

// WordsPerMinute derives the speaking rate from word count and audio
// duration, rounded to 2 decimals. The metric is absent when duration is
// missing or zero, or word count is negative: "not computable" is not a
// failure.
func WordsPerMinute(wordCount int, durationSec float64) types.Metric {
	if durationSec <= 0 {
		return types.AbsentMetric()
	}
	if wordCount < 0 {
		return types.AbsentMetric()
	}
	wpm := float64(wordCount) / durationSec * secondsPerMinute
	return types.MetricOf(round2(wpm))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
