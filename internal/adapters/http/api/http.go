// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/verba/internal/domain/model"
)

// defaultMaxUploadBytes bounds audio uploads at 25 MiB.
const defaultMaxUploadBytes = 25 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AssessAudio transcribes and scores an audio file on disk.
	AssessAudio(ctx context.Context, audioPath, referenceTranscript string) (model.Assessment, error)

	// Assess scores an already-transcribed submission.
	Assess(ctx context.Context, sub model.Submission) (model.Assessment, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	scoreHandler  *ScoreHandler

	maxUploadBytes int64
}

// ServerOption configures the API server.
type ServerOption func(*Server)

// WithMaxUploadBytes bounds the size of accepted audio uploads.
func WithMaxUploadBytes(n int64) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		maxUploadBytes: defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scoreHandler = NewScoreHandler(deps, s.maxUploadBytes)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(RequestIDMiddleware(s.scoreHandler.HandlePostScore), "score"))
	mux.HandleFunc("/score/transcript", MetricsMiddleware(RequestIDMiddleware(s.scoreHandler.HandlePostTranscript), "score_transcript"))
}

// transcriptRequest mirrors the OpenAPI schema for POST /score/transcript.
type transcriptRequest struct {
	Transcript          string  `json:"transcript"`
	DurationSec         float64 `json:"duration_sec"`
	Language            string  `json:"language"`
	ReferenceTranscript string  `json:"reference_transcript"`
}

func (t transcriptRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Transcript) == "":
		return errors.New("missing transcript")
	case t.DurationSec < 0:
		return errors.New("duration_sec must be non-negative")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
