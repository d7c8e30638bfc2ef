package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch, more efficiently than repeated EmbedText calls. The returned
	// slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces chat completions from a hosted text-generation service.
// When tool definitions are supplied, the returned completion may carry tool
// call requests instead of (or alongside) answer text.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate sends the system prompt and conversation to the model.
	// A nil or empty tools slice means the model cannot request tool calls.
	Generate(ctx context.Context, system string, messages []Message, tools []ToolDefinition) (*Completion, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the chat completion service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
