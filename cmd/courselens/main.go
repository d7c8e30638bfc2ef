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


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/courselens/courselens"
	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/config"
	"github.com/courselens/courselens/docparse"
	"github.com/courselens/courselens/reembed"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; the config has defaults for everything.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "courselens",
		Usage: "Ask questions about structured course documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
				Value:   "config.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest course documents from a folder into the index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "docs",
						Aliases: []string{"d"},
						Usage:   "Folder of course documents (overrides config)",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question about the indexed course material",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "session",
						Aliases: []string{"s"},
						Usage:   "Session ID to continue a conversation",
					},
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Start an interactive question loop",
					},
				},
			},
			{
				Name:   "courses",
				Usage:  "Show the indexed course catalog",
				Action: coursesCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Rewrite all stored vectors with the current embedding model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding API host (overrides config)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model to re-embed with (overrides config)",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Chunks embedded per API call",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Attempts per embedding call",
						Value: 3,
					},
				},
			},
			{
				Name:   "reset",
				Usage:  "Drop all indexed course data",
				Action: resetCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openSystem wires a System from the YAML config.
func openSystem(c *cli.Context) (*courselens.System, *config.AppConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	system, err := buildSystem(cfg)
	if err != nil {
		return nil, nil, err
	}
	return system, cfg, nil
}

// buildSystem constructs a System from a loaded config.
func buildSystem(cfg *config.AppConfig) (*courselens.System, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
		ai.WithGeneratorHost(cfg.AI.GeneratorHost),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithGeneratorModel(cfg.AI.GeneratorModel),
		ai.WithAPIKey(cfg.APIKey()),
		ai.WithMaxTokens(cfg.AI.MaxTokens),
	)

	system, err := courselens.NewSystem(cfg.Storage.Path,
		courselens.WithAIConfig(aiConfig),
		courselens.WithChunking(docparse.Config{
			MaxChunkSize: cfg.Chunking.MaxChunkSize,
			ChunkOverlap: cfg.Chunking.ChunkOverlap,
		}),
		courselens.WithMaxResults(cfg.Query.MaxResults),
		courselens.WithMaxHistory(cfg.Query.MaxHistory),
	)
	if err != nil {
		return nil, err
	}
	return system, nil
}

func ingestCommand(c *cli.Context) error {
	system, cfg, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	docs := c.String("docs")
	if docs == "" {
		docs = cfg.Docs
	}

	result, err := system.IngestFolder(context.Background(), docs)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d courses (%d chunks) from %s\n",
		result.CoursesAdded, result.ChunksAdded, docs)
	for _, fr := range result.Files {
		switch {
		case fr.Err != nil:
			fmt.Printf("  FAILED  %s: %v\n", fr.Path, fr.Err)
		case fr.Skipped:
			fmt.Printf("  skipped %s (already indexed: %s)\n", fr.Path, fr.CourseTitle)
		default:
			fmt.Printf("  added   %s (%s, %d chunks)\n", fr.Path, fr.CourseTitle, fr.ChunksAdded)
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	system, _, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	if c.Bool("interactive") {
		return askLoop(c.Context, system, c.String("session"))
	}

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("usage: courselens ask <question>")
	}

	return askOnce(c.Context, system, question, c.String("session"))
}

func askOnce(ctx context.Context, system *courselens.System, question, sessionID string) error {
	resp, err := system.Query(ctx, question, sessionID)
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range resp.Sources {
			if source.LessonLink != "" {
				fmt.Printf("  %s (%s)\n", source.Label(), source.LessonLink)
			} else {
				fmt.Printf("  %s\n", source.Label())
			}
		}
	}
	fmt.Printf("\nSession: %s\n", resp.SessionID)
	return nil
}

func askLoop(ctx context.Context, system *courselens.System, sessionID string) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Ask about the indexed courses. Empty line exits.")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			return nil
		}

		resp, err := system.Query(ctx, question, sessionID)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		sessionID = resp.SessionID

		fmt.Println(resp.Answer)
		for _, source := range resp.Sources {
			fmt.Printf("  [%s]\n", source.Label())
		}
	}
}

func coursesCommand(c *cli.Context) error {
	system, _, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	analytics, err := system.Analytics(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Courses: %d\n", analytics.TotalCourses)
	for _, title := range analytics.CourseTitles {
		fmt.Printf("  %s\n", title)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if host := c.String("embedding-host"); host != "" {
		cfg.AI.EmbeddingHost = host
	}
	if model := c.String("embedding-model"); model != "" {
		cfg.AI.EmbeddingModel = model
	}

	system, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	defer system.Close()

	reembedCfg := reembed.DefaultConfig()
	if n := c.Int("batch-size"); n > 0 {
		reembedCfg.BatchSize = n
	}
	if n := c.Int("max-retries"); n > 0 {
		reembedCfg.MaxRetries = n
	}

	stats, err := system.Reembed(c.Context, reembedCfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Re-embedded %d chunks across %d courses with model %s\n",
		stats.Chunks, stats.Courses, cfg.AI.EmbeddingModel)
	return nil
}

func resetCommand(c *cli.Context) error {
	system, _, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	if err := system.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Println("Index cleared.")
	return nil
}
