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


// Package generate drives answer generation with a bounded, single-round
// tool protocol.
//
// A response involves at most two provider calls: the first offers the
// registered tool declarations, and if the model requests tools they are
// executed and a second call, without declarations, produces the final
// text. A tool request in the second completion is ignored. Tool dispatch
// failures never abort the response; they become tool-result turns so the
// model can answer in degraded form.
package generate
