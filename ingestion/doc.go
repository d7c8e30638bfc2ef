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


// Package ingestion loads course documents from disk into the retrieval
// index.
//
// Files are processed concurrently on a worker pool; each file is parsed,
// chunked, embedded and indexed independently, and one bad file never
// aborts the batch. Ingestion is idempotent on course title: a file whose
// parsed title is already indexed is skipped.
package ingestion
