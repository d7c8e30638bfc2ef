package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("MissingFileReturnsDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Chunking.MaxChunkSize)
		assert.Equal(t, 100, cfg.Chunking.ChunkOverlap)
		assert.Equal(t, 5, cfg.Query.MaxResults)
		assert.Equal(t, 2, cfg.Query.MaxHistory)
	})

	t.Run("ReadsFileAndFillsGaps", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
storage:
  path: /tmp/test-db
docs: /srv/courses
chunking:
  max_chunk_size: 400
ai:
  generator_model: llama3
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/test-db", cfg.Storage.Path)
		assert.Equal(t, "/srv/courses", cfg.Docs)
		assert.Equal(t, 400, cfg.Chunking.MaxChunkSize)
		assert.Equal(t, "llama3", cfg.AI.GeneratorModel)
		// Gaps filled from defaults.
		assert.Equal(t, 100, cfg.Chunking.ChunkOverlap)
		assert.Equal(t, "embeddinggemma", cfg.AI.EmbeddingModel)
	})

	t.Run("MalformedYAMLFails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: ["), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("GeneratorHostFollowsEmbeddingHost", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
ai:
  embedding_host: http://remote:9000/v1
`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://remote:9000/v1", cfg.AI.GeneratorHost)
	})
}

func TestAPIKey(t *testing.T) {
	cfg := Default()

	t.Run("UnsetFallsBackToNone", func(t *testing.T) {
		assert.Equal(t, "none", cfg.APIKey())
	})

	t.Run("ReadsEnvironment", func(t *testing.T) {
		t.Setenv(cfg.AI.APIKeyEnv, "secret")
		assert.Equal(t, "secret", cfg.APIKey())
	})
}
