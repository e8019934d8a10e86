package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/verba/internal/samples"
)

// Default configuration constants.
const (
	defaultNumSamples = 200
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numSamples = flag.Int("samples", defaultNumSamples, "Number of transcript samples to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated samples (default: generated_samples_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: sample_run_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		samples.ShowHelp()
		return
	}

	if err := samples.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &samples.Config{
		BaseURL:    *baseURL,
		NumSamples: *numSamples,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := samples.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Sample run failed: " + err.Error() + "\n")
		return
	}
}
