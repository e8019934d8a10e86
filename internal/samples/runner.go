package samples

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/verba/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete sample scoring run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting verba sample run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("samples", config.NumSamples),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate samples
	samples, err := generateSamples(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("sample generation failed: %w", err)
	}

	// Step 3: Submit samples concurrently
	results, err := submitSamples(ctx, config, samples, stats)
	if err != nil {
		return fmt.Errorf("sample submission failed: %w", err)
	}

	// Step 4: Verify score bounds
	if err := verifyScores(ctx, results, stats); err != nil {
		return fmt.Errorf("score verification failed: %w", err)
	}

	// Step 5: Verify determinism on a replay slice
	if err := verifyDeterminism(ctx, config, samples, results, stats); err != nil {
		return fmt.Errorf("determinism verification failed: %w", err)
	}

	// Step 6: Summarize per-profile scores
	summarizeProfiles(samples, results, config.Verbose)

	// Step 7: Save samples to file
	if err := saveSamplesToFile(ctx, config, samples); err != nil {
		logger.Get().Warn(ctx, "failed to save samples to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "sample run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSamplesToFile saves the generated samples to a JSON file.
func saveSamplesToFile(ctx context.Context, config *Config, samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_samples_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}
	if err := os.WriteFile(filename, data, logFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "samples saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, samplesPerSecond float64

	if stats.SamplesSubmitted > 0 {
		successRate = float64(stats.SamplesSuccessful) / float64(stats.SamplesSubmitted) * 100
	}

	if stats.Duration > 0 {
		samplesPerSecond = float64(stats.SamplesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("samplesGenerated", stats.SamplesGenerated),
		logger.Int("samplesSubmitted", stats.SamplesSubmitted),
		logger.Int("samplesSuccessful", stats.SamplesSuccessful),
		logger.Int("samplesFailed", stats.SamplesFailed),
		logger.Int("boundsViolations", stats.BoundsViolations),
		logger.Int("replayMismatches", stats.ReplayMismatches),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("samplesPerSecond", samplesPerSecond))
}
