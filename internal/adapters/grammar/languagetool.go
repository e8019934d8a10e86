package grammar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/verba/internal/domain/model"
	"github.com/okian/verba/pkg/logger"
	"github.com/okian/verba/pkg/metrics"
)

// maxSuggestions caps the replacement candidates carried per finding.
const maxSuggestions = 3

// LanguageToolChecker talks to a LanguageTool HTTP server over its v2 API.
type LanguageToolChecker struct {
	endpoint string
	client   *http.Client
	logger   logger.Logger
}

// Option configures a LanguageToolChecker.
type Option func(*LanguageToolChecker)

// WithEndpoint sets the LanguageTool base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *LanguageToolChecker) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *LanguageToolChecker) {
		c.client = client
	}
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *LanguageToolChecker) {
		c.logger = log
	}
}

// NewLanguageToolChecker creates a checker for a LanguageTool server.
func NewLanguageToolChecker(opts ...Option) *LanguageToolChecker {
	c := &LanguageToolChecker{
		endpoint: "http://localhost:8010",
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("grammar")
	}
	return c
}

type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

type ltMatch struct {
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Length  int    `json:"length"`
	Rule    struct {
		ID string `json:"id"`
	} `json:"rule"`
	Context struct {
		Text string `json:"text"`
	} `json:"context"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
}

// Check posts the text to the engine and maps its matches to findings.
func (c *LanguageToolChecker) Check(ctx context.Context, text, language string) ([]model.GrammarFinding, error) {
	start := time.Now()

	form := url.Values{
		"text":     {text},
		"language": {language},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		metrics.RecordGrammarCheckError()
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordGrammarCheckError()
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordGrammarCheckError()
		return nil, fmt.Errorf("%w: engine returned status %d", ErrCheckFailed, resp.StatusCode)
	}

	var out ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.RecordGrammarCheckError()
		return nil, fmt.Errorf("%w: decoding response: %v", ErrCheckFailed, err)
	}

	findings := make([]model.GrammarFinding, 0, len(out.Matches))
	for _, m := range out.Matches {
		f := model.GrammarFinding{
			Message: m.Message,
			RuleID:  m.Rule.ID,
			Context: m.Context.Text,
			Offset:  m.Offset,
			Length:  m.Length,
		}
		for _, r := range m.Replacements {
			if len(f.Suggestions) == maxSuggestions {
				break
			}
			f.Suggestions = append(f.Suggestions, r.Value)
		}
		findings = append(findings, f)
	}

	metrics.RecordGrammarCheckLatency(float64(time.Since(start).Milliseconds()))
	c.logger.Debug(ctx, "grammar check complete",
		logger.Int("findings", len(findings)),
		logger.Duration("latency", time.Since(start)))
	return findings, nil
}

// Close releases idle connections held by the HTTP client.
func (c *LanguageToolChecker) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
