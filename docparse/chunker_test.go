package docparse

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"Default", DefaultConfig(), false},
		{"ZeroMaxChunkSize", Config{MaxChunkSize: 0, ChunkOverlap: 0}, true},
		{"NegativeOverlap", Config{MaxChunkSize: 100, ChunkOverlap: -1}, true},
		{"OverlapEqualsMax", Config{MaxChunkSize: 100, ChunkOverlap: 100}, true},
		{"NoOverlap", Config{MaxChunkSize: 100, ChunkOverlap: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChunkText(t *testing.T) {
	longText := strings.Repeat("Each of these sentences carries a bit of content. ", 30)

	t.Run("ShortTextIsOneChunk", func(t *testing.T) {
		parser := newTestParser(t, DefaultConfig())
		chunks := parser.chunkText("One short sentence. Another one.")
		require.Len(t, chunks, 1)
		assert.Equal(t, "One short sentence. Another one.", chunks[0])
	})

	t.Run("EmptyTextYieldsNoChunks", func(t *testing.T) {
		parser := newTestParser(t, DefaultConfig())
		assert.Empty(t, parser.chunkText(""))
		assert.Empty(t, parser.chunkText("   \n\n  "))
	})

	t.Run("ChunksNeverExceedMaxSize", func(t *testing.T) {
		parser := newTestParser(t, Config{MaxChunkSize: 120, ChunkOverlap: 30})
		chunks := parser.chunkText(longText)
		require.Greater(t, len(chunks), 1)

		for _, chunk := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 120)
		}
	})

	t.Run("OverlapSeedsNextChunk", func(t *testing.T) {
		overlap := 30
		parser := newTestParser(t, Config{MaxChunkSize: 120, ChunkOverlap: overlap})
		chunks := parser.chunkText(longText)
		require.Greater(t, len(chunks), 1)

		for i := 1; i < len(chunks); i++ {
			prev := []rune(chunks[i-1])
			seed := string(prev[len(prev)-overlap:])
			assert.True(t, strings.HasPrefix(chunks[i], seed),
				"chunk %d should start with the tail of chunk %d", i, i-1)
		}
	})

	t.Run("ZeroOverlapStartsChunksFresh", func(t *testing.T) {
		parser := newTestParser(t, Config{MaxChunkSize: 120, ChunkOverlap: 0})
		chunks := parser.chunkText(longText)
		require.Greater(t, len(chunks), 1)
		assert.True(t, strings.HasPrefix(chunks[1], "Each of these sentences"))
	})

	t.Run("WhitespaceIsCollapsed", func(t *testing.T) {
		parser := newTestParser(t, DefaultConfig())
		chunks := parser.chunkText("A  sentence\nwith   odd\twhitespace.")
		require.Len(t, chunks, 1)
		assert.Equal(t, "A sentence with odd whitespace.", chunks[0])
	})

	t.Run("OversizedSentenceIsHardSplit", func(t *testing.T) {
		parser := newTestParser(t, Config{MaxChunkSize: 50, ChunkOverlap: 10})
		chunks := parser.chunkText(strings.Repeat("x", 300))
		require.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 50)
		}
	})
}

func TestSplitSentences(t *testing.T) {
	t.Run("SplitsOnTerminators", func(t *testing.T) {
		sentences := splitSentences("First one. Second one! Third one? Trailing fragment")
		assert.Equal(t, []string{"First one.", "Second one!", "Third one?", "Trailing fragment"}, sentences)
	})

	t.Run("DoesNotSplitMidToken", func(t *testing.T) {
		sentences := splitSentences("Version 2.5 shipped today. It works.")
		assert.Equal(t, []string{"Version 2.5 shipped today.", "It works."}, sentences)
	})
}
