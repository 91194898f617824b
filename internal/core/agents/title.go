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
	"strings"
)

// TitleSettings configures title generation.
var TitleSettings = Settings{PromptName: "title_prompt", Temperature: 0.8, MaxTokens: 100}

// GenerateTitle proposes a video title. Surrounding double quotes, then
// single quotes, then whitespace are stripped from the model output.
func GenerateTitle(ctx context.Context, g *Generator, description, useCase, style, language string) (string, error) {
	slog.InfoContext(ctx, "generating title", "use_case", useCase, "language", language)

	out, err := g.Generate(ctx, TitleSettings, language, Values{
		"description": description,
		"use_case":    useCase,
		"style":       style,
	})
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(strings.Trim(strings.Trim(out, `"`), "'"))
	slog.InfoContext(ctx, "title generated", "title", title)
	return title, nil
}
