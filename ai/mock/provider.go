package mock

import (
	"github.com/courselens/courselens/ai"
)

// Provider is a mock implementation of ai.Provider for testing.
// It bundles the mock embedder and generator so tests can wire a full
// AI stack without network access.
type Provider struct {
	MockEmbedder  *Embedder
	MockGenerator *Generator
}

// NewProvider creates a new mock provider with default mock services.
func NewProvider() *Provider {
	return &Provider{
		MockEmbedder:  NewEmbedder(),
		MockGenerator: NewGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Generator returns the mock generation service.
func (p *Provider) Generator() ai.Generator {
	return p.MockGenerator
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}
