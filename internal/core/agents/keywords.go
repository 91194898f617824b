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

// KeywordsSettings configures keyword generation.
var KeywordsSettings = Settings{PromptName: "keywords_prompt", Temperature: 0.6, MaxTokens: 200}

// GenerateKeywords returns comma separated SEO keywords for the script.
func GenerateKeywords(ctx context.Context, g *Generator, title, scriptText, description, useCase, language string) (string, error) {
	slog.InfoContext(ctx, "generating keywords", "use_case", useCase)

	out, err := g.Generate(ctx, KeywordsSettings, language, Values{
		"title":       title,
		"script_text": Preview(scriptText, 1000),
		"description": Preview(description, 500),
		"use_case":    useCase,
	})
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "keywords generated", "keywords", out)
	return out, nil
}
