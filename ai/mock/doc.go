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


// Package mock provides test doubles for the ai package interfaces.
//
// The mocks are deterministic by default and allow behavior injection
// through function fields, plus call counting for verification:
//
//	embedder := mock.NewEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{1, 0, 0}, nil
//	}
//
//	generator := mock.NewGenerator()
//	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, tools []ai.ToolDefinition) (*ai.Completion, error) {
//	    return &ai.Completion{Text: "canned answer"}, nil
//	}
package mock
