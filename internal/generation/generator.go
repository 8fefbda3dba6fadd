// Package generation abstracts answer production behind a small interface so
// the answer engine does not couple to a specific language model backend. The
// only implementation in this service is a simulator: it sleeps for a
// configured delay and templates the question into a canned reply. A real
// integration replaces the implementation without changing the contract.
package generation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrGenerationFailed is returned when answer production fails for any general reason.
var ErrGenerationFailed = errors.New("failed to generate answer")

// Generator produces an answer for a question asked about a document.
type Generator interface {
	// GenerateAnswer returns the answer text for questionText, or an error.
	// The call blocks for the duration of the (simulated) inference and
	// honors context cancellation.
	GenerateAnswer(ctx context.Context, questionText string) (string, error)
}

// simulatedGenerator is the mock-LLM implementation: fixed delay, templated answer.
type simulatedGenerator struct {
	delay time.Duration
}

// NewSimulated returns a Generator that waits delay and then answers with a
// template embedding the question verbatim.
func NewSimulated(delay time.Duration) Generator {
	return &simulatedGenerator{delay: delay}
}

func (g *simulatedGenerator) GenerateAnswer(ctx context.Context, questionText string) (string, error) {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
	case <-timer.C:
	}

	return fmt.Sprintf("This is a generated answer to your question: '%s'", questionText), nil
}
