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


package tools

import "errors"

var (
	// ErrUnknownTool is returned when dispatch names a tool that was never
	// registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrDuplicateTool is returned when two tools register under one name.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrInvalidArguments is returned when the model's arguments payload
	// cannot be decoded against the tool's schema.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)
