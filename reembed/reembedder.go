// Copyright 2026 Courselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/storage"
)

// Config holds configuration for a re-embedding run.
type Config struct {
	// BatchSize is the number of chunks embedded per API call.
	BatchSize int

	// ReportInterval is how often progress is reported, in chunks.
	ReportInterval int

	// MaxRetries is the number of attempts per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a completed re-embedding run.
type Stats struct {
	Courses int
	Chunks  int
	Elapsed time.Duration
}

// Reembedder rewrites the vectors of every stored chunk and catalog entry
// using the configured embedder. Chunk and catalog keys are content-based,
// so writing a record back with a fresh vector overwrites it in place.
type Reembedder struct {
	catalog  storage.CatalogRepository
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
	backoff  Backoff
	logger   *slog.Logger
}

// NewReembedder creates a Reembedder writing progress output to progress,
// typically os.Stderr. A nil config uses DefaultConfig.
func NewReembedder(catalog storage.CatalogRepository, chunks storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if catalog == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultConfig().BatchSize
	}

	return &Reembedder{
		catalog:  catalog,
		chunks:   chunks,
		embedder: embedder,
		config:   config,
		progress: progress,
		backoff: Backoff{
			MaxAttempts: config.MaxRetries,
			BaseDelay:   config.RetryDelay,
		},
		logger: slog.Default().With("component", "reembedder"),
	}, nil
}

// Run re-embeds the whole index: every chunk's contextual text and every
// catalog entry's title.
func (r *Reembedder) Run(ctx context.Context) (*Stats, error) {
	var chunks []*core.Chunk
	err := r.chunks.ForEach(ctx, func(chunk *core.Chunk) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	if len(chunks) == 0 {
		fmt.Fprintln(r.progress, "Index is empty, nothing to re-embed")
		return &Stats{}, nil
	}

	fmt.Fprintf(r.progress, "Re-embedding %d chunks (batch size: %d)\n",
		len(chunks), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, len(chunks), r.config.ReportInterval)

	for start := 0; start < len(chunks); start += r.config.BatchSize {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		end := min(start+r.config.BatchSize, len(chunks))
		if err := r.processBatch(ctx, chunks[start:end]); err != nil {
			return nil, err
		}
		tracker.Add(end - start)
	}
	tracker.Finish()

	courses, err := r.refreshCatalog(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Courses: courses,
		Chunks:  len(chunks),
		Elapsed: tracker.Elapsed(),
	}
	fmt.Fprintf(r.progress, "Re-embedded %d chunks across %d courses in %v\n",
		stats.Chunks, stats.Courses, stats.Elapsed.Round(time.Second))

	return stats, nil
}

// processBatch re-embeds one batch of chunks and writes them back.
func (r *Reembedder) processBatch(ctx context.Context, batch []*core.Chunk) error {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.ContextualText()
	}

	var vectors [][]float32
	err := r.backoff.Do(ctx, func() error {
		var err error
		vectors, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("embedding batch after %d attempts: %w", r.config.MaxRetries, err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
	}

	for i := range batch {
		batch[i].Vector = vectors[i]
	}

	if _, err := r.chunks.AddChunks(ctx, batch...); err != nil {
		return fmt.Errorf("writing re-embedded chunks: %w", err)
	}
	return nil
}

// refreshCatalog re-embeds every catalog entry's title. The catalog is
// small, so one embedding call covers it.
func (r *Reembedder) refreshCatalog(ctx context.Context) (int, error) {
	var entries []*core.CatalogEntry
	err := r.catalog.ForEach(ctx, func(entry *core.CatalogEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("loading catalog: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	titles := make([]string, len(entries))
	for i, entry := range entries {
		titles[i] = entry.Title
	}

	var vectors [][]float32
	err = r.backoff.Do(ctx, func() error {
		var err error
		vectors, err = r.embedder.EmbedTexts(ctx, titles)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("embedding course titles: %w", err)
	}
	if len(vectors) != len(entries) {
		return 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(entries), len(vectors))
	}

	for i, entry := range entries {
		entry.Vector = vectors[i]
		if _, err := r.catalog.AddCourse(ctx, entry); err != nil {
			return 0, fmt.Errorf("writing catalog entry %q: %w", entry.Title, err)
		}
	}

	r.logger.Info("catalog re-embedded", "courses", len(entries))
	return len(entries), nil
}
