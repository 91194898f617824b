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

package agents

import (
	"context"
	"log/slog"
)

// DefaultKeywords is used when no keywords were generated.
const DefaultKeywords = "video content"

// DescriptionSettings configures description generation.
var DescriptionSettings = Settings{PromptName: "description_prompt", Temperature: 0.7, MaxTokens: 500}

// GenerateDescription writes the video description from the first 1000
// characters of the script.
func GenerateDescription(ctx context.Context, g *Generator, title, scriptText, keywords, useCase, language string) (string, error) {
	slog.InfoContext(ctx, "generating description", "script_chars", len(scriptText))

	if keywords == "" {
		keywords = DefaultKeywords
	}
	out, err := g.Generate(ctx, DescriptionSettings, language, Values{
		"title":       title,
		"script_text": Preview(scriptText, 1000),
		"keywords":    keywords,
		"use_case":    useCase,
	})
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "description generated", "chars", len(out))
	return out, nil
}

// Preview returns the first n characters of s followed by "..." when s is
// longer than n characters, s itself otherwise.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
