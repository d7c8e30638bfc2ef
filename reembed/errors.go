package reembed

import "errors"

var (
	// ErrCatalogRepositoryRequired is returned when no catalog repository is provided
	ErrCatalogRepositoryRequired = errors.New("catalog repository is required")

	// ErrChunkRepositoryRequired is returned when no chunk repository is provided
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrEmbedderRequired is returned when no embedder is provided
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidMaxAttempts is returned when a backoff is configured with
	// MaxAttempts <= 0
	ErrInvalidMaxAttempts = errors.New("MaxAttempts must be greater than 0")
)
