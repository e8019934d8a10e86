package samples

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/verba/pkg/logger"
)

// Speaker profile constants.
const (
	profileFluent     = "fluent"
	profileHesitant   = "hesitant"
	profileRusher     = "rusher"
	profileSlow       = "slow"
	profileDisfluent  = "disfluent"
	profileCount      = 5
	randomPickDivisor = 1_000_000
)

// Speaking rate bounds per profile, in words per minute.
const (
	fluentWPM   = 140.0
	rusherWPM   = 210.0
	slowWPM     = 80.0
	hesitantWPM = 120.0
)

// baseSentences are clean declarative sentences the generator samples from.
var baseSentences = []string{
	"The quarterly report shows steady growth across all regions.",
	"Our team completed the migration two weeks ahead of schedule.",
	"Customer feedback has been overwhelmingly positive this quarter.",
	"The new onboarding process reduced setup time significantly.",
	"We plan to expand the pilot program to three more cities.",
	"The engineering team resolved the outage within an hour.",
	"Market conditions remain favorable for the product launch.",
	"Training sessions will continue through the end of the month.",
}

// fillerInserts are the disfluencies injected into hesitant transcripts.
var fillerInserts = []string{"um", "uh", "you know", "like", "basically", "I mean"}

// getRandomInt returns a random integer in [0, n) using crypto/rand.
func getRandomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateSamples creates the configured number of transcript samples across
// speaker profiles.
func generateSamples(ctx context.Context, config *Config, stats *Stats) ([]Sample, error) {
	logger.Get().Info(ctx, "generating transcript samples", logger.Int("numSamples", config.NumSamples))

	samples := make([]Sample, config.NumSamples)
	for i := range samples {
		samples[i] = generateSingleSample()
	}

	stats.SamplesGenerated = len(samples)
	logger.Get().Info(ctx, "generated samples successfully", logger.Int("count", len(samples)))
	return samples, nil
}

// generateSingleSample builds one sample with a profile-controlled filler
// density and speaking rate.
func generateSingleSample() Sample {
	profile := pickProfile()
	sentenceCount := 2 + int(getRandomInt(4))

	parts := make([]string, 0, sentenceCount)
	for i := 0; i < sentenceCount; i++ {
		sentence := baseSentences[getRandomInt(int64(len(baseSentences)))]
		if profile == profileHesitant || profile == profileDisfluent {
			sentence = injectFillers(sentence, profile)
		}
		parts = append(parts, sentence)
	}
	transcript := strings.Join(parts, " ")

	wordCount := len(strings.Fields(transcript))
	duration := durationFor(profile, wordCount)

	return Sample{
		ID:          uuid.New().String(),
		Transcript:  transcript,
		DurationSec: duration,
		Language:    "en-US",
		Profile:     profile,
	}
}

// pickProfile selects a speaker profile with a bias towards fluent speech.
func pickProfile() string {
	switch getRandomInt(profileCount) {
	case 0, 1:
		return profileFluent
	case 2:
		return profileHesitant
	case 3:
		return profileRusher
	default:
		if getRandomInt(2) == 0 {
			return profileSlow
		}
		return profileDisfluent
	}
}

// injectFillers splices disfluencies into a sentence. Disfluent speakers get
// one per clause, hesitant speakers roughly every other sentence.
func injectFillers(sentence, profile string) string {
	words := strings.Fields(sentence)
	if len(words) < 3 {
		return sentence
	}

	insertEvery := 4
	if profile == profileHesitant {
		insertEvery = 7
	}

	out := make([]string, 0, len(words)+len(words)/insertEvery)
	for i, w := range words {
		if i > 0 && i%insertEvery == 0 {
			out = append(out, fillerInserts[getRandomInt(int64(len(fillerInserts)))]+",")
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// durationFor derives an audio duration that yields the profile's target
// speaking rate.
func durationFor(profile string, wordCount int) float64 {
	wpm := fluentWPM
	switch profile {
	case profileRusher:
		wpm = rusherWPM
	case profileSlow:
		wpm = slowWPM
	case profileHesitant, profileDisfluent:
		wpm = hesitantWPM
	}
	return float64(wordCount) / wpm * 60.0
}
