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
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIModel talks to any OpenAI-compatible chat completion endpoint. The
// default configuration points it at DeepSeek.
type OpenAIModel struct {
	client openai.Client
	model  string
	apiKey string
}

// NewOpenAIModel builds the client. An empty apiKey yields a model that
// reports itself unavailable. Extra options are appended after the
// key and base URL.
func NewOpenAIModel(apiKey, baseURL, model string, extra ...option.RequestOption) *OpenAIModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	opts = append(opts, extra...)
	return &OpenAIModel{
		client: openai.NewClient(opts...),
		model:  model,
		apiKey: apiKey,
	}
}

func (m *OpenAIModel) Available() bool {
	return m.apiKey != ""
}

func (m *OpenAIModel) ModelName() string {
	return m.model
}

// Complete sends one chat completion and returns the first choice content.
func (m *OpenAIModel) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
