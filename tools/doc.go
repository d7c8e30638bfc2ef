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


// Package tools defines the capabilities the generator may invoke during
// answer generation, and the registry that declares and dispatches them.
//
// Each Tool carries a JSON Schema parameter declaration for the model and
// an Invoke method taking the model's raw JSON arguments. Results carry
// both the text rendered for the model and the provenance sources for the
// end user, so invocations stay stateless and concurrent queries cannot
// observe each other's sources.
package tools
