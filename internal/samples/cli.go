package samples

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/verba/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "sample_run_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the sample scoring tool.
func ShowHelp() {
	os.Stdout.WriteString(`Verba Sample Scoring Tool
=========================

A concurrent tool for exercising the Verba speech scoring API with
synthetic transcripts and checking score bounds and determinism.

Usage:
  go run cmd/score-samples/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -samples int
        Number of transcript samples to generate and submit (default 200)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated samples (default: generated_samples_TIMESTAMP.json)
  -log string
        Log file for run output (default: sample_run_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/score-samples/main.go

  # Run with custom parameters
  go run cmd/score-samples/main.go -samples 1000 -workers 16 -url http://localhost:8080

  # Run with verbose output
  go run cmd/score-samples/main.go -verbose -samples 500
`)
}
