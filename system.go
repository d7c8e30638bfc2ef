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


// Package courselens answers questions about structured course documents.
//
// System wires the whole pipeline: document parsing and chunking, the
// two-tier retrieval index over BadgerDB, tool-calling answer generation
// and bounded session memory. An HTTP layer or CLI drives System; it is
// the process boundary.
package courselens

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/ai/openai"
	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/docparse"
	"github.com/courselens/courselens/generate"
	"github.com/courselens/courselens/ingestion"
	"github.com/courselens/courselens/reembed"
	"github.com/courselens/courselens/search"
	"github.com/courselens/courselens/session"
	badgerstore "github.com/courselens/courselens/storage/badger"
	"github.com/courselens/courselens/tools"
)

// queryPrefix frames every user question for the generator.
const queryPrefix = "Answer this question about course materials: "

// System is the top-level orchestrator.
type System struct {
	repos        *badgerstore.Repositories
	provider     ai.Provider
	index        *search.Index
	parser       *docparse.Parser
	pipeline     *ingestion.Pipeline
	orchestrator *generate.Orchestrator
	sessions     *session.Store
	logger       *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig   *ai.Config
	provider   ai.Provider
	chunking   docparse.Config
	maxResults int
	maxHistory int
	inMemory   bool
	poolSize   int
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(cfg *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects an AI provider directly, bypassing the OpenAI
// client construction. Intended for tests.
func WithProvider(provider ai.Provider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithChunking sets the document chunking configuration.
func WithChunking(cfg docparse.Config) SystemOption {
	return func(o *systemOptions) {
		o.chunking = cfg
	}
}

// WithMaxResults bounds each content search.
func WithMaxResults(n int) SystemOption {
	return func(o *systemOptions) {
		o.maxResults = n
	}
}

// WithMaxHistory sets how many exchanges each session retains.
func WithMaxHistory(n int) SystemOption {
	return func(o *systemOptions) {
		o.maxHistory = n
	}
}

// WithInMemoryStorage uses an in-memory index instead of disk. Intended
// for tests.
func WithInMemoryStorage() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// WithIngestPoolSize sets the ingestion worker pool size.
func WithIngestPoolSize(n int) SystemOption {
	return func(o *systemOptions) {
		o.poolSize = n
	}
}

// NewSystem creates a fully wired System with its index at dbPath.
func NewSystem(dbPath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig:   ai.DefaultConfig(),
		chunking:   docparse.DefaultConfig(),
		maxResults: 5,
		maxHistory: 2,
	}
	for _, opt := range opts {
		opt(options)
	}

	var repos *badgerstore.Repositories
	var err error
	if options.inMemory {
		repos, err = badgerstore.NewMemoryRepositories()
	} else {
		repos, err = badgerstore.NewRepositories(dbPath)
	}
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	index, err := search.NewIndex(repos.Catalog, repos.Chunks, provider.Embedder(),
		search.WithMaxResults(options.maxResults))
	if err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	parser, err := docparse.NewParser(options.chunking)
	if err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	pipelineOpts := []ingestion.Option{}
	if options.poolSize > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(options.poolSize))
	}
	pipeline, err := ingestion.NewPipeline(parser, index, pipelineOpts...)
	if err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewCourseSearchTool(index, options.maxResults)); err != nil {
		pipeline.Release()
		provider.Close()
		repos.Close()
		return nil, err
	}

	orchestrator, err := generate.NewOrchestrator(provider.Generator(), registry)
	if err != nil {
		pipeline.Release()
		provider.Close()
		repos.Close()
		return nil, err
	}

	sessions, err := session.NewStore(session.WithMaxTurns(options.maxHistory))
	if err != nil {
		pipeline.Release()
		provider.Close()
		repos.Close()
		return nil, err
	}

	return &System{
		repos:        repos,
		provider:     provider,
		index:        index,
		parser:       parser,
		pipeline:     pipeline,
		orchestrator: orchestrator,
		sessions:     sessions,
		logger:       slog.Default().With("component", "system"),
	}, nil
}

// Close releases the worker pool, the AI provider and the index.
func (s *System) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	return s.repos.Close()
}

// Index exposes the retrieval index for direct use.
func (s *System) Index() *search.Index {
	return s.index
}

// IngestFolder loads every course document in dir into the index.
// Already indexed courses are skipped; per-file failures are reported in
// the result, not as an error.
func (s *System) IngestFolder(ctx context.Context, dir string) (*ingestion.Result, error) {
	return s.pipeline.IngestFolder(ctx, dir)
}

// QueryResponse is the answer to one question.
type QueryResponse struct {
	Answer    string
	Sources   []core.Source
	SessionID string
}

// Query answers a question about the indexed course material. An empty
// sessionID starts a fresh session; the returned SessionID continues it.
func (s *System) Query(ctx context.Context, question, sessionID string) (*QueryResponse, error) {
	if sessionID == "" {
		sessionID = session.NewSessionID()
	}

	history := s.sessions.History(sessionID)

	answer, err := s.orchestrator.Respond(ctx, queryPrefix+question, history)
	if err != nil {
		return nil, fmt.Errorf("answering question: %w", err)
	}

	s.sessions.Append(sessionID, question, answer.Text)

	return &QueryResponse{
		Answer:    answer.Text,
		Sources:   answer.Sources,
		SessionID: sessionID,
	}, nil
}

// Analytics describes the indexed catalog.
type Analytics struct {
	TotalCourses int
	CourseTitles []string
}

// Analytics reports what the index currently holds.
func (s *System) Analytics(ctx context.Context) (*Analytics, error) {
	count, err := s.index.CourseCount(ctx)
	if err != nil {
		return nil, err
	}
	titles, err := s.index.CourseTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &Analytics{
		TotalCourses: count,
		CourseTitles: titles,
	}, nil
}

// Reembed rewrites every stored vector with the current embedding model.
// Run this after changing the embedding model instead of re-ingesting the
// source documents. Progress is written to progress; a nil cfg uses the
// defaults.
func (s *System) Reembed(ctx context.Context, cfg *reembed.Config, progress io.Writer) (*reembed.Stats, error) {
	reembedder, err := reembed.NewReembedder(s.repos.Catalog, s.repos.Chunks, s.provider.Embedder(), cfg, progress)
	if err != nil {
		return nil, err
	}
	return reembedder.Run(ctx)
}

// Reset drops all indexed data from both collections.
func (s *System) Reset(ctx context.Context) error {
	s.logger.Warn("clearing all indexed course data")
	return s.index.Clear(ctx)
}
