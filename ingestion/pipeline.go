package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/docparse"
	"github.com/courselens/courselens/search"
	"github.com/panjf2000/ants/v2"
)

// Pipeline loads course documents into the retrieval index.
type Pipeline struct {
	parser *docparse.Parser
	index  *search.Index
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent file processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(parser *docparse.Parser, index *search.Index, opts ...Option) (*Pipeline, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		parser: parser,
		index:  index,
		pool:   pool,
		logger: slog.Default().With("component", "ingestion-pipeline"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// FileResult reports the outcome of ingesting one file.
type FileResult struct {
	Path        string
	CourseTitle string
	ChunksAdded int
	Skipped     bool
	Err         error
}

// Result aggregates a folder ingestion run.
type Result struct {
	Files        []FileResult
	CoursesAdded int
	ChunksAdded  int
}

// Failed returns the file results that ended in an error.
func (r *Result) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// IngestFolder ingests every course document in dir. Files are processed
// concurrently; per-file failures land in the result instead of aborting
// the run. Files whose parsed course title is already indexed are skipped.
func (p *Pipeline) IngestFolder(ctx context.Context, dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading course folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]FileResult, 0, len(paths))
	)

	for _, path := range paths {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			fr := p.ingestFile(ctx, path)
			mu.Lock()
			results = append(results, fr)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			results = append(results, FileResult{Path: path, Err: submitErr})
			mu.Unlock()
		}
	}
	wg.Wait()

	slices.SortFunc(results, func(a, b FileResult) int {
		return strings.Compare(a.Path, b.Path)
	})

	result := &Result{Files: results}
	for _, fr := range results {
		if fr.Err == nil && !fr.Skipped {
			result.CoursesAdded++
			result.ChunksAdded += fr.ChunksAdded
		}
	}

	p.logger.Info("folder ingestion finished",
		"dir", dir,
		"files", len(results),
		"coursesAdded", result.CoursesAdded,
		"chunksAdded", result.ChunksAdded,
		"failed", len(result.Failed()))

	return result, nil
}

// ingestFile parses, embeds and indexes one course document.
func (p *Pipeline) ingestFile(ctx context.Context, path string) FileResult {
	fr := FileResult{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		fr.Err = err
		return fr
	}

	course, chunks, err := p.parser.Parse(string(raw))
	if err != nil {
		fr.Err = fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		return fr
	}
	fr.CourseTitle = course.Title

	exists, err := p.index.HasCourse(ctx, course.Title)
	if err != nil {
		fr.Err = err
		return fr
	}
	if exists {
		p.logger.Debug("course already indexed, skipping", "course", course.Title)
		fr.Skipped = true
		return fr
	}

	if err := p.index.AddCourse(ctx, course); err != nil {
		fr.Err = err
		return fr
	}

	chunkPtrs := make([]*core.Chunk, len(chunks))
	for i := range chunks {
		chunkPtrs[i] = &chunks[i]
	}
	if err := p.index.AddChunks(ctx, chunkPtrs); err != nil {
		fr.Err = err
		return fr
	}

	fr.ChunksAdded = len(chunks)
	p.logger.Info("ingested course", "course", course.Title, "chunks", len(chunks))
	return fr
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
