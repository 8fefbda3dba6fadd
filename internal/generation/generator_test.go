package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGenerator_GenerateAnswer(t *testing.T) {
	g := NewSimulated(0)

	answer, err := g.GenerateAnswer(context.Background(), "What is a cat?")

	require.NoError(t, err)
	assert.Equal(t, "This is a generated answer to your question: 'What is a cat?'", answer)
}

func TestSimulatedGenerator_Delay(t *testing.T) {
	g := NewSimulated(20 * time.Millisecond)

	start := time.Now()
	_, err := g.GenerateAnswer(context.Background(), "Do cats purr?")

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatedGenerator_ContextCancelled(t *testing.T) {
	g := NewSimulated(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	answer, err := g.GenerateAnswer(ctx, "What is a cat?")

	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, answer)
}
