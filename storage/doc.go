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


// Package storage provides the storage abstraction layer for courselens.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// The index is split into two collections with different granularities:
//
//   - CatalogRepository: one entry per course, embedding the course title.
//     Used for fuzzy course name resolution and catalog analytics.
//   - ChunkRepository: one entry per content chunk, embedding the chunk
//     text. Used for content search with optional course and lesson filters.
//
// # Constructor Return Type Pattern
//
// Public constructors return the repository interfaces rather than concrete
// types to prevent accidental coupling to BadgerDB specifics:
//
//	repos, err := badger.NewRepositories("/path/to/db")
//	catalog := repos.Catalog // storage.CatalogRepository interface
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
