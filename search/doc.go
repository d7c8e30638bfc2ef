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


// Package search provides the two-tier retrieval index over course material.
//
// The Index combines two collections:
//   - a course catalog, embedding each course title, used to resolve fuzzy
//     course name references ("MCP" matches "MCP: Build Rich-Context AI
//     Apps with Anthropic") and for catalog analytics
//   - a content collection, embedding each chunk, used for the actual
//     semantic search
//
// Filtered search resolves the course name against the catalog first and
// then restricts the chunk search to the resolved course. If the name
// cannot be resolved the search fails rather than silently widening to all
// courses.
package search
