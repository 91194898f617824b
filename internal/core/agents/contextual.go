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
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// ShortVideoMaxSeconds is the longest duration still treated as a short video.
const ShortVideoMaxSeconds = 240

// ContextualInput describes the project a contextual description is written
// for. Zero or empty fields are left out of the context.
type ContextualInput struct {
	Title       string
	Description string
	Inspiration string
	TypeVideo   string
	Language    string
	Duration    int // seconds
}

// ContextualSettings returns the settings for a video type; each type has
// its own template, contextual_description_<type in lower case>.
func ContextualSettings(typeVideo string) Settings {
	return Settings{
		PromptName:  "contextual_description_" + strings.ToLower(typeVideo),
		Temperature: 0.7,
		MaxTokens:   1500,
	}
}

// BuildContext assembles the {context} sentence block of the template.
func BuildContext(in ContextualInput) string {
	parts := []string{fmt.Sprintf("Title of the video project: %s.", in.Title)}

	if in.Description != "" {
		parts = append(parts, fmt.Sprintf("Here is some existing description or context: %s.", in.Description))
	}
	if in.Inspiration != "" {
		parts = append(parts, fmt.Sprintf("Consider the following content from inspiration videos: %s.", in.Inspiration))
	}

	expected := fmt.Sprintf("The video is expected to be around %d seconds long.", in.Duration)
	switch in.TypeVideo {
	case model.VideoTypeLifeLesson:
		parts = append(parts, "The script should tell a short, impactful story that conveys a life lesson.")
		if in.Duration > 0 {
			parts = append(parts, expected)
			if in.Duration <= ShortVideoMaxSeconds {
				parts = append(parts, "Emphasize conciseness and a format suitable for a short video.")
			} else {
				parts = append(parts, "Allow for more detailed storytelling suitable for a longer video.")
			}
		}
	case model.VideoTypeStoicism:
		parts = append(parts, "The script should explore stoic principles and offer practical applications for modern life.")
	case model.VideoTypeXThingsToDo:
		parts = append(parts, "The script must present a list of 'X things to do'. "+
			"The narration style should be direct and action-oriented. "+
			"The structure should be: Introduction - X things (e.g., Firstly, Secondly, Thirdly...).")
		if in.Duration > 0 {
			parts = append(parts, expected)
		}
	}
	return strings.Join(parts, " ")
}

// GenerateContextualDescription writes a description of the project framed
// by its video type.
func GenerateContextualDescription(ctx context.Context, g *Generator, in ContextualInput) (string, error) {
	slog.InfoContext(ctx, "generating contextual description", "type_video", in.TypeVideo, "language", in.Language)

	out, err := g.Generate(ctx, ContextualSettings(in.TypeVideo), in.Language, Values{
		"context": BuildContext(in),
		"title":   in.Title,
	})
	if err != nil {
		return "", err
	}
	slog.InfoContext(ctx, "contextual description generated", "chars", len(out))
	return out, nil
}
