// Package asr adapts external speech-to-text engines behind a narrow
// Transcriber interface so the scoring pipeline never depends on a concrete
// engine.
package asr

import (
	"context"

	"github.com/okian/verba/internal/domain/model"
)

// Transcriber converts an audio file into speech signals.
type Transcriber interface {
	// Transcribe sends the audio at audioPath to the engine and returns the
	// recognized transcript together with its word count and, when the
	// container exposes it, the audio duration in seconds.
	Transcribe(ctx context.Context, audioPath string) (model.SpeechSignals, error)

	// ModelVersion identifies the engine and model that produced the
	// transcript, stamped on every assessment for reproducibility.
	ModelVersion() string

	// Close releases any resources held by the engine client.
	Close() error
}
