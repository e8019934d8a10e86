// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/verba/internal/adapters/asr"
	"github.com/okian/verba/internal/adapters/grammar"
	jobqueue "github.com/okian/verba/internal/adapters/mq/queue"
	workerpool "github.com/okian/verba/internal/adapters/mq/worker"
	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/internal/domain/scoring"
	"github.com/okian/verba/internal/domain/textfeat"
	"github.com/okian/verba/internal/domain/wer"
	"github.com/okian/verba/pkg/logger"
	"github.com/okian/verba/pkg/metrics"
)

// ErrBackpressure is returned when the grammar queue rejects a job; callers
// translate it into a retryable response.
var ErrBackpressure = jobqueue.ErrBackpressure

// Service wires the recognition, analysis and scoring components into the
// assessment pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	transcriber asr.Transcriber
	checker     grammar.Checker
	cache       asr.TranscriptCache
	jobQueue    jobqueue.Queue
	workerPool  *workerpool.Pool
	scorer      *scoring.Scorer

	// Configuration
	workerCount   int
	queueSize     int
	cacheSize     int
	calibration   scoring.Calibration
	language      string
	engineTimeout time.Duration
	modelVersion  string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of grammar worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the grammar job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the size of the transcript cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithCalibration replaces the embedded scoring calibration.
func WithCalibration(cal scoring.Calibration) Option {
	return func(s *Service) {
		s.calibration = cal
	}
}

// WithLanguage sets the language passed to the grammar engine.
func WithLanguage(language string) Option {
	return func(s *Service) {
		if language != "" {
			s.language = language
		}
	}
}

// WithEngineTimeout bounds how long a request waits on the grammar engine.
func WithEngineTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.engineTimeout = timeout
		}
	}
}

// WithTranscriber sets the speech recognition engine.
func WithTranscriber(t asr.Transcriber) Option {
	return func(s *Service) {
		if t != nil {
			s.transcriber = t
		}
	}
}

// WithChecker sets the grammar engine.
func WithChecker(c grammar.Checker) Option {
	return func(s *Service) {
		if c != nil {
			s.checker = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     256,
		cacheSize:     1024,
		calibration:   scoring.DefaultCalibration(),
		language:      "en-US",
		engineTimeout: 15 * time.Second,
		modelVersion:  "unknown",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting assessment service...")

	scorer, err := scoring.New(scoring.WithCalibration(s.calibration))
	if err != nil {
		return fmt.Errorf("building scorer: %w", err)
	}
	s.scorer = scorer

	if s.transcriber == nil {
		s.transcriber = asr.NewWhisperTranscriber()
	}
	if s.checker == nil {
		s.checker = grammar.NewLanguageToolChecker()
	}
	s.modelVersion = s.transcriber.ModelVersion()

	s.cache = asr.NewTranscriptCache(
		asr.WithCacheMaxSize(s.cacheSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.jobQueue, s.checker)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.String("modelVersion", s.modelVersion),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping assessment service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}
	if s.transcriber != nil {
		_ = s.transcriber.Close()
	}
	if s.checker != nil {
		_ = s.checker.Close()
	}

	s.started = false
	s.logger.Info(ctx, "assessment service stopped")
}

// AssessAudio transcribes the audio file and scores the resulting speech.
// Identical audio content reuses the cached transcript instead of calling
// the recognition engine again.
func (s *Service) AssessAudio(ctx context.Context, audioPath, referenceTranscript string) (model.Assessment, error) {
	key, err := asr.ContentKey(audioPath)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("hashing audio: %w", err)
	}

	signals, ok := s.cache.Get(ctx, key)
	if !ok {
		signals, err = s.transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return model.Assessment{}, err
		}
		s.cache.Put(ctx, key, signals)
	}

	return s.Assess(ctx, model.Submission{
		Signals:             signals,
		ReferenceTranscript: referenceTranscript,
	})
}

// Assess runs the full analysis pipeline over already-transcribed speech:
// normalization, parallel feature extraction and penalty scoring.
func (s *Service) Assess(ctx context.Context, sub model.Submission) (model.Assessment, error) {
	start := time.Now()

	transcript := textfeat.Normalize(sub.Signals.Transcript)
	wordCount := textfeat.CountWords(transcript)

	signals := sub.Signals
	signals.Transcript = transcript
	signals.WordCount = wordCount
	if signals.Language == "" {
		signals.Language = s.language
	}

	var (
		findings    []model.GrammarFinding
		fillerCount int
		fillerWords []model.FillerOccurrence
		wordsPerMin = textfeat.WordsPerMinute(wordCount, signals.DurationSec)
		wordErrRate = wer.Compute(sub.ReferenceTranscript, transcript)
		sentences   = textfeat.Sentences(transcript)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		findings, err = s.checkGrammar(gctx, transcript, signals.Language)
		return err
	})
	g.Go(func() error {
		fillerCount, fillerWords = textfeat.DetectFillers(transcript)
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Assessment{}, err
	}

	result := s.scorer.Score(scoring.Input{
		GrammarErrors: len(findings),
		FillerCount:   fillerCount,
		WordCount:     wordCount,
		WER:           wordErrRate,
		WPM:           wordsPerMin,
	})

	assessment := model.Assessment{
		Signals:           signals,
		GrammarErrorCount: len(findings),
		GrammarFindings:   capFindings(findings),
		FillerCount:       fillerCount,
		FillerWords:       capFillers(fillerWords),
		WER:               wordErrRate,
		WPM:               wordsPerMin,
		Sentences:         sentences,
		Result:            result,
		ModelVersion:      s.modelVersion,
		GeneratedAt:       time.Now().UTC(),
	}

	metrics.RecordAssessmentScored()
	metrics.RecordPipelineLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordFinalScore(result.FinalScore)
	metrics.RecordGrammarFindings(len(findings))
	metrics.RecordFillerWords(fillerCount)

	s.logger.Info(ctx, "assessment complete",
		logger.Float64("finalScore", result.FinalScore),
		logger.Int("wordCount", wordCount),
		logger.Int("grammarErrors", len(findings)),
		logger.Int("fillers", fillerCount),
		logger.Duration("latency", time.Since(start)),
	)

	return assessment, nil
}

// checkGrammar submits the text through the bounded queue and waits for a
// worker to reply. A full queue is backpressure and aborts the request; an
// engine failure degrades to zero findings so the rest of the assessment
// still stands.
func (s *Service) checkGrammar(ctx context.Context, text, language string) ([]model.GrammarFinding, error) {
	if text == "" {
		return nil, nil
	}

	job := jobqueue.Job{
		Text:     text,
		Language: language,
		Reply:    make(chan jobqueue.Result, 1),
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		return nil, ErrBackpressure
	}

	select {
	case res := <-job.Reply:
		if res.Err != nil {
			s.logger.Warn(ctx, "grammar engine unavailable, scoring without findings", logger.Error(res.Err))
			return nil, nil
		}
		return res.Findings, nil
	case <-time.After(s.engineTimeout):
		s.logger.Warn(ctx, "grammar check timed out, scoring without findings",
			logger.Duration("timeout", s.engineTimeout))
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// capFindings bounds the detail list carried in responses.
func capFindings(findings []model.GrammarFinding) []model.GrammarFinding {
	if len(findings) > model.MaxDetailItems {
		return findings[:model.MaxDetailItems]
	}
	return findings
}

func capFillers(words []model.FillerOccurrence) []model.FillerOccurrence {
	if len(words) > model.MaxDetailItems {
		return words[:model.MaxDetailItems]
	}
	return words
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"cacheSize":    s.cacheSize,
		"modelVersion": s.modelVersion,
	}

	if s.started {
		queueLen := s.jobQueue.Len(context.Background())
		stats["queueLength"] = queueLen
		stats["cachedTranscripts"] = s.cache.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
