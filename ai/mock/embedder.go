package mock

import (
	"context"
	"hash/fnv"
	"sync"
)

// embeddingDimension matches common small embedding models.
const embeddingDimension = 384

// Embedder is a mock implementation of ai.Embedder for testing.
// By default it produces deterministic pseudo-embeddings derived from the
// input text, so equal texts always map to equal vectors.
type Embedder struct {
	// EmbedTextFunc overrides the default single-text behavior when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides the default batch behavior when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	mu              sync.Mutex
	embedTextCalls  int
	embedTextsCalls int
}

// NewEmbedder creates a new mock embedder with deterministic defaults.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText returns a deterministic vector for the text, or delegates to
// EmbedTextFunc if set.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.embedTextCalls++
	e.mu.Unlock()

	if e.EmbedTextFunc != nil {
		return e.EmbedTextFunc(ctx, text)
	}
	return deterministicVector(text), nil
}

// EmbedTexts returns deterministic vectors for the texts, or delegates to
// EmbedTextsFunc if set.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.embedTextsCalls++
	e.mu.Unlock()

	if e.EmbedTextsFunc != nil {
		return e.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// EmbedTextCallCount returns the number of EmbedText invocations.
func (e *Embedder) EmbedTextCallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.embedTextCalls
}

// EmbedTextsCallCount returns the number of EmbedTexts invocations.
func (e *Embedder) EmbedTextsCallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.embedTextsCalls
}

// Reset clears recorded call counts.
func (e *Embedder) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.embedTextCalls = 0
	e.embedTextsCalls = 0
}

// deterministicVector hashes the text into a fixed-dimension vector.
// Identical texts yield identical vectors; different texts almost
// certainly differ.
func deterministicVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, embeddingDimension)
	state := seed
	for i := range vector {
		state = state*6364136223846793005 + 1442695040888963407
		vector[i] = float32(int64(state>>33))/float32(1<<31) - 0.5
	}
	return vector
}
