// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloud

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// CompletionRequest is a single system + user chat turn.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int // 0 leaves the provider default
}

// LanguageModel is a chat completion backend. Implementations make exactly
// one provider call per Complete and are safe for concurrent use.
type LanguageModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Available is false when the backend lacks credentials.
	Available() bool
	// ModelName is reported by the health endpoint.
	ModelName() string
}
