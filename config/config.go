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


// Package config holds the YAML application configuration for the CLI.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// StorageConfig configures the on-disk index.
type StorageConfig struct {
	// Path is the BadgerDB directory.
	Path string `yaml:"path"`
}

// ChunkingConfig configures document splitting.
type ChunkingConfig struct {
	MaxChunkSize int `yaml:"max_chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// AIConfig configures the embedding and generation services.
type AIConfig struct {
	EmbeddingHost  string  `yaml:"embedding_host"`
	GeneratorHost  string  `yaml:"generator_host"`
	EmbeddingModel string  `yaml:"embedding_model"`
	GeneratorModel string  `yaml:"generator_model"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
}

// QueryConfig bounds retrieval and conversation memory.
type QueryConfig struct {
	MaxResults int `yaml:"max_results"`
	MaxHistory int `yaml:"max_history"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Storage  StorageConfig  `yaml:"storage"`
	Docs     string         `yaml:"docs"`
	Chunking ChunkingConfig `yaml:"chunking"`
	AI       AIConfig       `yaml:"ai"`
	Query    QueryConfig    `yaml:"query"`
}

// Load reads a config from the specified path. If the file does not
// exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./courselens-db"
	}
	if cfg.Docs == "" {
		cfg.Docs = "./docs"
	}
	if cfg.Chunking.MaxChunkSize == 0 {
		cfg.Chunking.MaxChunkSize = 800
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 100
	}
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = "http://localhost:11434/v1"
	}
	if cfg.AI.GeneratorHost == "" {
		cfg.AI.GeneratorHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "embeddinggemma"
	}
	if cfg.AI.GeneratorModel == "" {
		cfg.AI.GeneratorModel = "qwen2.5:3b"
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = "COURSELENS_API_KEY"
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 800
	}
	if cfg.Query.MaxResults == 0 {
		cfg.Query.MaxResults = 5
	}
	if cfg.Query.MaxHistory == 0 {
		cfg.Query.MaxHistory = 2
	}
}

// APIKey resolves the configured API key environment variable.
// Returns "none", accepted by local OpenAI-compatible servers, when the
// variable is unset.
func (c *AppConfig) APIKey() string {
	if key := os.Getenv(c.AI.APIKeyEnv); key != "" {
		return key
	}
	return "none"
}
