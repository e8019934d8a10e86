package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/youpy/go-wav"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/pkg/logger"
	"github.com/okian/verba/pkg/metrics"
)

// WhisperTranscriber talks to a whisper-compatible HTTP inference server.
// The server accepts a multipart upload under the "file" field and responds
// with a JSON body carrying the recognized text.
type WhisperTranscriber struct {
	endpoint     string
	modelVersion string
	language     string
	client       *http.Client
	logger       logger.Logger
}

// WhisperOption configures a WhisperTranscriber.
type WhisperOption func(*WhisperTranscriber)

// WithEndpoint sets the inference server base URL.
func WithEndpoint(endpoint string) WhisperOption {
	return func(t *WhisperTranscriber) {
		t.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithModelVersion sets the identifier stamped on assessments.
func WithModelVersion(version string) WhisperOption {
	return func(t *WhisperTranscriber) {
		t.modelVersion = version
	}
}

// WithLanguage sets the language hint forwarded to the engine.
func WithLanguage(language string) WhisperOption {
	return func(t *WhisperTranscriber) {
		t.language = language
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) WhisperOption {
	return func(t *WhisperTranscriber) {
		t.client = client
	}
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(log logger.Logger) WhisperOption {
	return func(t *WhisperTranscriber) {
		t.logger = log
	}
}

// NewWhisperTranscriber creates a transcriber for a whisper HTTP server.
func NewWhisperTranscriber(opts ...WhisperOption) *WhisperTranscriber {
	t := &WhisperTranscriber{
		endpoint:     "http://localhost:9000",
		modelVersion: "whisper-base",
		language:     "en",
		client:       &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logger.Named("asr")
	}
	return t
}

type whisperResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio file and returns the recognized signals.
// Duration is probed from the WAV container when possible; for compressed
// formats it is left at zero and the rate calculator reports the tempo
// metric as absent.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (model.SpeechSignals, error) {
	start := time.Now()

	body, contentType, err := buildUpload(audioPath)
	if err != nil {
		metrics.RecordTranscriptionError()
		return model.SpeechSignals{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/inference", body)
	if err != nil {
		metrics.RecordTranscriptionError()
		return model.SpeechSignals{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		metrics.RecordTranscriptionError()
		return model.SpeechSignals{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordTranscriptionError()
		return model.SpeechSignals{}, fmt.Errorf("%w: engine returned status %d", ErrTranscription, resp.StatusCode)
	}

	var out whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordTranscriptionError()
		return model.SpeechSignals{}, fmt.Errorf("%w: decoding response: %v", ErrTranscription, err)
	}

	transcript := strings.TrimSpace(out.Text)
	signals := model.SpeechSignals{
		Transcript:  transcript,
		WordCount:   len(strings.Fields(transcript)),
		DurationSec: probeDuration(audioPath, t.logger),
		Language:    t.language,
	}

	metrics.RecordTranscriptionLatency(float64(time.Since(start).Milliseconds()))
	t.logger.Debug(ctx, "transcription complete",
		logger.Int("word_count", signals.WordCount),
		logger.Float64("duration_sec", signals.DurationSec),
		logger.Duration("latency", time.Since(start)))
	return signals, nil
}

// ModelVersion returns the engine identifier.
func (t *WhisperTranscriber) ModelVersion() string {
	return t.modelVersion
}

// Close releases idle connections held by the HTTP client.
func (t *WhisperTranscriber) Close() error {
	t.client.CloseIdleConnections()
	return nil
}

// buildUpload assembles the multipart request body for the engine.
func buildUpload(audioPath string) (io.Reader, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// probeDuration reads the audio duration out of a WAV container. Compressed
// formats have no cheap local probe, so they report zero.
func probeDuration(audioPath string, log logger.Logger) float64 {
	if strings.ToLower(filepath.Ext(audioPath)) != ".wav" {
		return 0
	}
	file, err := os.Open(audioPath)
	if err != nil {
		log.Warn(context.Background(), "cannot open audio for duration probe", logger.Error(err))
		return 0
	}
	defer file.Close()

	d, err := wav.NewReader(file).Duration()
	if err != nil {
		log.Warn(context.Background(), "cannot read wav duration", logger.Error(err))
		return 0
	}
	return d.Seconds()
}
