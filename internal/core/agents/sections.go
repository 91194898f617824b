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

const (
	SectionDelimiter      = "---SECTION---"
	DefaultDuration       = 30
	DefaultNbSections     = 1
	NoInspirationProvided = "No inspiration content provided."
)

var (
	SingleSectionSettings    = Settings{PromptName: "sections_prompt_single", Temperature: 0.7, MaxTokens: 2000}
	MultipleSectionsSettings = Settings{PromptName: "sections_prompt_multiple", Temperature: 0.7, MaxTokens: 2000}
)

// SectionsInput describes the script to write. A zero Duration or NbSection
// takes the package default.
type SectionsInput struct {
	Description string
	UseCase     string
	Style       string
	Language    string
	Duration    int // seconds
	NbSection   int
	Inspiration string
}

// SectionsResult is the parsed script body.
type SectionsResult struct {
	Sections   []string
	ScriptText string
}

// GenerateSections writes the script body. With more than one section the
// model separates them with SectionDelimiter; empty fragments are dropped
// and ScriptText joins the rest with a blank line.
func GenerateSections(ctx context.Context, g *Generator, in SectionsInput) (*SectionsResult, error) {
	if in.Duration <= 0 {
		in.Duration = DefaultDuration
	}
	if in.NbSection <= 0 {
		in.NbSection = DefaultNbSections
	}
	if in.Inspiration == "" {
		in.Inspiration = NoInspirationProvided
	}
	settings := MultipleSectionsSettings
	if in.NbSection == 1 {
		settings = SingleSectionSettings
	}

	slog.InfoContext(ctx, "generating sections",
		"sections", in.NbSection, "duration", in.Duration, "use_case", in.UseCase, "language", in.Language)

	out, err := g.Generate(ctx, settings, in.Language, Values{
		"description":         in.Description,
		"use_case":            in.UseCase,
		"style":               in.Style,
		"duration":            in.Duration,
		"nb_section":          in.NbSection,
		"inspiration_content": in.Inspiration,
	})
	if err != nil {
		return nil, err
	}

	result := SplitSections(out, in.NbSection)
	slog.InfoContext(ctx, "sections generated", "sections", len(result.Sections), "chars", len(result.ScriptText))
	return result, nil
}

// SplitSections parses raw model output holding count sections.
func SplitSections(raw string, count int) *SectionsResult {
	if count == 1 {
		text := strings.TrimSpace(raw)
		return &SectionsResult{Sections: []string{text}, ScriptText: text}
	}

	sections := make([]string, 0, count)
	for _, part := range strings.Split(raw, SectionDelimiter) {
		if part = strings.TrimSpace(part); part != "" {
			sections = append(sections, part)
		}
	}
	return &SectionsResult{Sections: sections, ScriptText: strings.Join(sections, "\n\n")}
}
