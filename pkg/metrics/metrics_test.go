package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewManagerRegistersOnCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(WithPrometheusRegistry(reg), WithNamespace("test"), WithSubsystem("scoring"))
	if m == nil {
		t.Fatal("expected manager")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected metric families registered")
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"test_scoring_assessments_scored_total",
		"test_scoring_final_score",
		"test_scoring_queue_size",
		"test_scoring_worker_count",
		"test_scoring_http_requests_total",
	} {
		if !names[want] {
			t.Errorf("missing metric family %s", want)
		}
	}
}

func TestGlobalHelpersDoNotPanic(t *testing.T) {
	RecordAssessmentScored()
	RecordPipelineLatency(12.5)
	RecordFinalScore(82.5)
	RecordGrammarFindings(2)
	RecordFillerWords(3)
	RecordTranscriptionLatency(40)
	RecordTranscriptionError()
	RecordGrammarCheckLatency(25)
	RecordGrammarCheckError()
	RecordTranscriptCacheHit()
	RecordTranscriptCacheMiss()
	UpdateQueueSize(1)
	UpdateQueueCapacity(100)
	UpdateQueueUtilization(0.01)
	RecordQueueEnqueue()
	RecordQueueDequeue()
	RecordQueueEnqueueError()
	RecordQueueProcessingLatency(0.3)
	UpdateWorkerCount(4)
	RecordWorkerProcessingLatency(5)
	RecordWorkerError()
	RecordHTTPRequest("score", "POST", "200")
	RecordHTTPRequestDuration("score", "POST", "200", 7)
	RecordErrorByComponent("asr", "timeout")
	RecordErrorByEndpoint("score", "POST", "server_error")
	UpdateSystemMemoryUsage(1 << 20)
	UpdateSystemGoroutineCount(10)
	RecordSystemGCPauseTime(0.1)

	if GetRegistry() == nil {
		t.Fatal("expected custom registry")
	}
}
