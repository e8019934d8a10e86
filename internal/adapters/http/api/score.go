// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/verba/internal/adapters/asr"
	"github.com/okian/verba/internal/adapters/mq/queue"
	"github.com/okian/verba/internal/domain/model"
)

// allowedAudioExts is the accepted upload extension set.
var allowedAudioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".webm": true,
}

// ScoreHandler handles scoring requests.
type ScoreHandler struct {
	deps           Dependencies
	maxUploadBytes int64
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps Dependencies, maxUploadBytes int64) *ScoreHandler {
	return &ScoreHandler{deps: deps, maxUploadBytes: maxUploadBytes}
}

// HandlePostScore handles POST /score requests carrying a multipart audio
// upload under the "audio" field, with an optional "reference_transcript"
// form value.
func (h *ScoreHandler) HandlePostScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAudioExts[ext] {
		writeError(w, http.StatusBadRequest, "unsupported_media", NewKind(op, ErrUnsupportedMedia))
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, errors.New("temp file"), err))
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	assessment, err := h.deps.AssessAudio(r.Context(), tmp.Name(), r.FormValue("reference_transcript"))
	if err != nil {
		h.writeAssessError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(assessment))
}

// HandlePostTranscript handles POST /score/transcript requests carrying an
// already-transcribed submission as JSON.
func (h *ScoreHandler) HandlePostTranscript(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_transcript"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sub := model.Submission{
		Signals: model.SpeechSignals{
			Transcript:  req.Transcript,
			DurationSec: req.DurationSec,
			Language:    req.Language,
		},
		ReferenceTranscript: req.ReferenceTranscript,
	}
	assessment, err := h.deps.Assess(r.Context(), sub)
	if err != nil {
		h.writeAssessError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(assessment))
}

// writeAssessError translates pipeline failures onto the status codes the
// API contract promises.
func (h *ScoreHandler) writeAssessError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, queue.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, asr.ErrTranscription):
		writeError(w, http.StatusBadGateway, "engine_failure", WrapKind(op, ErrEngineFailure, err))
	case errors.Is(err, asr.ErrUnsupportedAudio):
		writeError(w, http.StatusBadRequest, "unsupported_media", NewKind(op, ErrUnsupportedMedia))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
