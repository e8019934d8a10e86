// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and environment overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// QueueSize bounds the in-memory grammar job queue.
	QueueSize int `koanf:"queue_size"`
	// WorkerCount sets the number of grammar workers.
	WorkerCount int `koanf:"worker_count"`
	// TranscriptCacheSize bounds the audio transcript cache.
	TranscriptCacheSize int `koanf:"transcript_cache_size"`
	// ASREndpoint is the base URL of the speech recognition engine.
	ASREndpoint string `koanf:"asr_endpoint"`
	// ASRModel identifies the recognition model, stamped on assessments.
	ASRModel string `koanf:"asr_model"`
	// GrammarEndpoint is the base URL of the grammar engine.
	GrammarEndpoint string `koanf:"grammar_endpoint"`
	// GrammarLanguage is the language tag sent to the grammar engine.
	GrammarLanguage string `koanf:"grammar_language"`
	// EngineTimeoutMS bounds how long a request waits on the grammar engine.
	EngineTimeoutMS int `koanf:"engine_timeout_ms"`
	// MaxUploadBytes bounds accepted audio uploads.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
	// CalibrationPath optionally overrides the embedded scoring calibration.
	CalibrationPath string `koanf:"calibration_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		QueueSize:           256,
		WorkerCount:         runtime.NumCPU() * 2,
		TranscriptCacheSize: 1024,
		ASREndpoint:         "http://localhost:9000",
		ASRModel:            "whisper-base",
		GrammarEndpoint:     "http://localhost:8010",
		GrammarLanguage:     "en-US",
		EngineTimeoutMS:     15_000,
		MaxUploadBytes:      25 << 20,
		CalibrationPath:     "",
	}
}
