package samples

import "time"

// Config holds configuration for the sample scoring run
type Config struct {
	BaseURL    string        // Base URL of the service
	NumSamples int           // Number of samples to generate
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for samples
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Sample represents a transcript submission to be scored
type Sample struct {
	ID          string  `json:"id"`
	Transcript  string  `json:"transcript"`
	DurationSec float64 `json:"duration_sec"`
	Language    string  `json:"language"`
	Reference   string  `json:"reference_transcript,omitempty"`
	Profile     string  `json:"profile"`
}

// ScoreMetrics mirrors the metrics section of an assessment response
type ScoreMetrics struct {
	GrammarErrors int              `json:"grammar_errors"`
	Fillers       int              `json:"fillers"`
	WER           *float64         `json:"wer"`
	WPM           *float64         `json:"wpm"`
	Normalized    NormalizedScores `json:"normalized"`
	FinalScore    float64          `json:"final_score"`
}

// NormalizedScores mirrors the penalty breakdown of an assessment response
type NormalizedScores struct {
	Grammar float64 `json:"grammar"`
	Fillers float64 `json:"fillers"`
	WER     float64 `json:"wer"`
	Fluency float64 `json:"fluency"`
}

// ScoreResponse represents the response from sample submission
type ScoreResponse struct {
	Metrics     ScoreMetrics `json:"metrics"`
	FillerWords []string     `json:"filler_words"`
	Explanation string       `json:"explanation"`
}

// Stats holds run statistics
type Stats struct {
	SamplesGenerated  int
	SamplesSubmitted  int
	SamplesSuccessful int
	SamplesFailed     int
	BoundsViolations  int
	ReplayMismatches  int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
