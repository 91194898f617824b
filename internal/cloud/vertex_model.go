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
	"strings"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// DefaultSafetySettings turns off blocking for every harm category.
var DefaultSafetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
}

// VertexModel generates text with a Gemini model on Vertex AI.
type VertexModel struct {
	models             *genai.Models
	model              string
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
}

// NewVertexClient opens a genai client on the Vertex AI backend.
func NewVertexClient(ctx context.Context, project, location string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// NewVertexModel wraps a Vertex AI genai client for the named Gemini model.
func NewVertexModel(client *genai.Client, model string) *VertexModel {
	meter := otel.Meter(cor.MeterName)
	in, _ := meter.Int64Counter("llm.gemini.token.input")
	out, _ := meter.Int64Counter("llm.gemini.token.output")
	return &VertexModel{
		models:             client.Models,
		model:              model,
		inputTokenCounter:  in,
		outputTokenCounter: out,
	}
}

// Available reports whether a client is bound. Vertex AI authenticates with
// application default credentials when the client is created.
func (m *VertexModel) Available() bool {
	return m.models != nil
}

func (m *VertexModel) ModelName() string {
	return m.model
}

func (m *VertexModel) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(req.Temperature)),
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		SafetySettings:    DefaultSafetySettings,
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := m.models.GenerateContent(ctx, m.model, genai.Text(req.User), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.UsageMetadata != nil {
		m.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		m.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	var value strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			value.WriteString(part.Text)
		}
	}
	if value.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return value.String(), nil
}
