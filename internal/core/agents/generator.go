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

// Package agents generates the pieces of a video script with a language
// model. A single Generator resolves a localized prompt template, fills it
// and calls the model; the Generate* functions in this package configure it
// for each piece (title, sections, description, keywords and contextual
// description).
package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
)

// SystemMessage is sent ahead of every prompt.
const SystemMessage = "You are an AI assistant specialized in video content creation. " +
	"Your mission is to generate catchy titles, compelling descriptions, structured sections, " +
	"and complete content, ensuring that each element is relevant and tailored to the target theme and language."

// Settings configures one kind of generation.
type Settings struct {
	PromptName  string
	Temperature float64
	MaxTokens   int
}

// Generator renders prompt templates and sends them to the language model.
// It is safe for concurrent use.
type Generator struct {
	store prompts.Reader
	model cloud.LanguageModel
}

// NewGenerator returns a Generator; a nil model leaves it unavailable.
func NewGenerator(store prompts.Reader, model cloud.LanguageModel) *Generator {
	return &Generator{store: store, model: model}
}

// Available reports whether a usable language model is configured.
func (g *Generator) Available() bool {
	return g.model != nil && g.model.Available()
}

// ModelName returns the configured model name, or "" without a model.
func (g *Generator) ModelName() string {
	if g.model == nil {
		return ""
	}
	return g.model.ModelName()
}

// Template returns the template for (name, language), falling back to
// English when the language has no translation.
func (g *Generator) Template(ctx context.Context, name, language string) (string, error) {
	template, err := g.store.Get(ctx, prompts.Key{Name: name, Language: language})
	if err == nil {
		return template, nil
	}
	if !errors.Is(err, prompts.ErrPromptNotFound) {
		return "", fmt.Errorf("failed to load prompt %s/%s: %w", name, language, err)
	}

	if language != model.DefaultLanguage {
		slog.WarnContext(ctx, "prompt not found, trying default language",
			"prompt", name, "language", language, "fallback", model.DefaultLanguage)
		template, err = g.store.Get(ctx, prompts.Key{Name: name, Language: model.DefaultLanguage})
		if err == nil {
			return template, nil
		}
		if !errors.Is(err, prompts.ErrPromptNotFound) {
			return "", fmt.Errorf("failed to load prompt %s/%s: %w", name, model.DefaultLanguage, err)
		}
	}
	return "", model.NewTemplateNotFoundError(fmt.Sprintf("Prompt '%s' not found in database for any language", name))
}

// Generate fills the template named by settings with values and returns the
// trimmed model output. A "duration" value holding a number of seconds is
// replaced by a sentence stating that duration. The model is called once.
func (g *Generator) Generate(ctx context.Context, settings Settings, language string, values Values) (string, error) {
	if !g.Available() {
		return "", model.NewConfigurationError(fmt.Sprintf(
			"%s generation requires an LLM client, check the API key configuration", settings.PromptName))
	}

	template, err := g.Template(ctx, settings.PromptName, language)
	if err != nil {
		return "", err
	}

	values = maps.Clone(values)
	if d, ok := values["duration"]; ok && d != nil {
		if phrase, ok := DurationPhrase(d); ok {
			values["duration"] = phrase
		} else {
			slog.WarnContext(ctx, "duration is not a number of seconds, kept as is", "duration", d)
		}
	}

	prompt := Format(template, values)
	slog.DebugContext(ctx, "prompt rendered", "prompt", settings.PromptName, "language", language, "text", prompt)

	out, err := g.model.Complete(ctx, cloud.CompletionRequest{
		System:      SystemMessage,
		User:        prompt,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		slog.ErrorContext(ctx, "generation failed", "prompt", settings.PromptName, "error", err)
		return "", model.NewUpstreamCallError(fmt.Sprintf("%s generation failed", settings.PromptName), err)
	}
	return strings.TrimSpace(out), nil
}
