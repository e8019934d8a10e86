package samples

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// scoreRequest is the wire payload for POST /score/transcript.
type scoreRequest struct {
	Transcript          string  `json:"transcript"`
	DurationSec         float64 `json:"duration_sec"`
	Language            string  `json:"language"`
	ReferenceTranscript string  `json:"reference_transcript,omitempty"`
}

// submitSamples submits samples concurrently using a worker pool and
// collects the returned scores keyed by sample ID.
func submitSamples(ctx context.Context, config *Config, samples []Sample, stats *Stats) (map[string]ScoreResponse, error) {
	log.Printf("submitting %d samples with %d workers...", len(samples), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score/transcript"

	var (
		successful int64
		failed     int64
		submitted  int64
	)

	results := make(map[string]ScoreResponse, len(samples))
	var resultsMu sync.Mutex

	sampleChan := make(chan Sample, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for sample := range sampleChan {
				select {
				case <-ctx.Done():
					return
				default:
					resp, err := scoreSample(ctx, client, url, sample)
					atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("sample %s failed: %v", sample.ID, err)
						}
						continue
					}
					atomic.AddInt64(&successful, 1)
					resultsMu.Lock()
					results[sample.ID] = *resp
					resultsMu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(sampleChan)
		for _, sample := range samples {
			select {
			case <-ctx.Done():
				return
			case sampleChan <- sample:
			}
		}
	}()

	wg.Wait()

	stats.SamplesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SamplesSuccessful = int(atomic.LoadInt64(&successful))
	stats.SamplesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("sample submission completed: successful=%d failed=%d",
		stats.SamplesSuccessful, stats.SamplesFailed)

	return results, nil
}

// scoreSample submits one sample and parses the assessment.
func scoreSample(ctx context.Context, client *HTTPClient, url string, sample Sample) (*ScoreResponse, error) {
	req := scoreRequest{
		Transcript:          sample.Transcript,
		DurationSec:         sample.DurationSec,
		Language:            sample.Language,
		ReferenceTranscript: sample.Reference,
	}

	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return nil, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var score ScoreResponse
	if err := json.Unmarshal(body, &score); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &score, nil
}
