package docparse

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Config controls how lesson text is split into chunks.
type Config struct {
	// MaxChunkSize is the maximum chunk length in characters.
	MaxChunkSize int

	// ChunkOverlap is the number of trailing characters of a closed chunk
	// that seed the next chunk, preserving continuity across boundaries.
	// Overlap never crosses a lesson boundary.
	ChunkOverlap int
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: 800,
		ChunkOverlap: 100,
	}
}

// Validate checks that the chunking configuration is usable.
func (c Config) Validate() error {
	if c.MaxChunkSize <= 0 {
		return errors.New("docparse config: MaxChunkSize must be positive")
	}
	if c.ChunkOverlap < 0 {
		return errors.New("docparse config: ChunkOverlap cannot be negative")
	}
	if c.ChunkOverlap >= c.MaxChunkSize {
		return errors.New("docparse config: ChunkOverlap must be smaller than MaxChunkSize")
	}
	return nil
}

// chunkText splits text into sentence-bounded chunks of at most MaxChunkSize
// characters. Consecutive chunks share the configured character overlap: the
// closed chunk's tail seeds the next one before new sentences are appended.
func (p *Parser) chunkText(text string) []string {
	sentences := p.splitOversized(splitSentences(text))
	if len(sentences) == 0 {
		return nil
	}

	limit := p.config.MaxChunkSize
	overlap := p.config.ChunkOverlap

	var chunks []string
	var current string

	for _, sentence := range sentences {
		if current == "" {
			current = sentence
			continue
		}

		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(sentence) <= limit {
			current = current + " " + sentence
			continue
		}

		chunks = append(chunks, current)

		seed := tailRunes(current, overlap)
		if seed != "" {
			current = seed + " " + sentence
		} else {
			current = sentence
		}
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}

// splitOversized hard-splits any sentence that cannot fit in a chunk even on
// its own, so greedy packing never produces an oversized chunk. The split limit
// leaves room for an overlap seed plus separator.
func (p *Parser) splitOversized(sentences []string) []string {
	limit := p.config.MaxChunkSize - p.config.ChunkOverlap - 1
	if limit < 1 {
		limit = 1
	}

	var out []string
	for _, sentence := range sentences {
		if utf8.RuneCountInString(sentence) <= limit {
			out = append(out, sentence)
			continue
		}
		runes := []rune(sentence)
		for start := 0; start < len(runes); start += limit {
			end := start + limit
			if end > len(runes) {
				end = len(runes)
			}
			out = append(out, string(runes[start:end]))
		}
	}
	return out
}

// splitSentences splits text on sentence-ending punctuation followed by
// whitespace (or end of input). Text is never split mid-sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if !isSentenceEnd(runes[i]) {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}

		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, collapseWhitespace(sentence))
		}
		current.Reset()
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		sentences = append(sentences, collapseWhitespace(rest))
	}

	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// collapseWhitespace normalizes internal runs of whitespace to single spaces,
// so packed chunks are not dominated by source-formatting newlines.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tailRunes returns the last n characters of s, or all of s if shorter.
func tailRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
