// Package grammar adapts external grammar engines behind a narrow Checker
// interface.
package grammar

import (
	"context"

	"github.com/okian/verba/internal/domain/model"
)

// Checker analyzes text and reports grammar findings.
type Checker interface {
	// Check returns the findings for text in the given language. An empty
	// slice means the engine found nothing to flag.
	Check(ctx context.Context, text, language string) ([]model.GrammarFinding, error)

	// Close releases any resources held by the engine client.
	Close() error
}
