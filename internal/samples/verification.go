package samples

import (
	"context"
	"fmt"
	"log"
)

// replaySampleCount bounds how many samples are resubmitted for the
// determinism check.
const replaySampleCount = 20

// verifyScores checks every returned assessment against the scoring
// contract: the final score in [0, 100] and each normalized penalty in
// [0, 1].
func verifyScores(ctx context.Context, results map[string]ScoreResponse, stats *Stats) error {
	log.Println("verifying score bounds...")

	if len(results) == 0 {
		return fmt.Errorf("no results to verify")
	}

	for id, r := range results {
		if r.Metrics.FinalScore < 0 || r.Metrics.FinalScore > 100 {
			stats.BoundsViolations++
			log.Printf("sample %s: final score %.2f out of range", id, r.Metrics.FinalScore)
		}
		for name, p := range map[string]float64{
			"grammar": r.Metrics.Normalized.Grammar,
			"fillers": r.Metrics.Normalized.Fillers,
			"wer":     r.Metrics.Normalized.WER,
			"fluency": r.Metrics.Normalized.Fluency,
		} {
			if p < 0 || p > 1 {
				stats.BoundsViolations++
				log.Printf("sample %s: %s penalty %.4f out of range", id, name, p)
			}
		}
	}

	if stats.BoundsViolations > 0 {
		return fmt.Errorf("%d score bounds violations", stats.BoundsViolations)
	}
	log.Println("score bounds verified")
	return nil
}

// verifyDeterminism resubmits a slice of samples and confirms the scores
// do not change between runs.
func verifyDeterminism(ctx context.Context, config *Config, samples []Sample, first map[string]ScoreResponse, stats *Stats) error {
	replay := samples
	if len(replay) > replaySampleCount {
		replay = replay[:replaySampleCount]
	}
	log.Printf("replaying %d samples for determinism...", len(replay))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score/transcript"

	for _, sample := range replay {
		original, ok := first[sample.ID]
		if !ok {
			continue
		}

		second, err := scoreSample(ctx, client, url, sample)
		if err != nil {
			return fmt.Errorf("replay of sample %s failed: %w", sample.ID, err)
		}

		if second.Metrics.FinalScore != original.Metrics.FinalScore {
			stats.ReplayMismatches++
			log.Printf("sample %s: score changed between runs (%.2f -> %.2f)",
				sample.ID, original.Metrics.FinalScore, second.Metrics.FinalScore)
		}
		if second.Metrics.Fillers != original.Metrics.Fillers {
			stats.ReplayMismatches++
			log.Printf("sample %s: filler count changed between runs (%d -> %d)",
				sample.ID, original.Metrics.Fillers, second.Metrics.Fillers)
		}
	}

	if stats.ReplayMismatches > 0 {
		return fmt.Errorf("%d determinism mismatches", stats.ReplayMismatches)
	}
	log.Println("determinism verified")
	return nil
}

// summarizeProfiles logs average scores grouped by speaker profile so a
// run shows the expected ordering: fluent above hesitant above disfluent.
func summarizeProfiles(samples []Sample, results map[string]ScoreResponse, verbose bool) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, s := range samples {
		r, ok := results[s.ID]
		if !ok {
			continue
		}
		sums[s.Profile] += r.Metrics.FinalScore
		counts[s.Profile]++
	}

	log.Println("average score by speaker profile:")
	for profile, count := range counts {
		if count == 0 {
			continue
		}
		log.Printf("   %-10s %.2f (n=%d)", profile, sums[profile]/float64(count), count)
	}

	if verbose {
		for _, s := range samples {
			if r, ok := results[s.ID]; ok {
				log.Printf("   %s [%s] score=%.2f fillers=%d", s.ID, s.Profile, r.Metrics.FinalScore, r.Metrics.Fillers)
			}
		}
	}
}
