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

package commands

import (
	"log/slog"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
)

// InspirationTranscriber turns the inspiration URLs into a single text.
// It only runs when URLs are present and never fails: videos that cannot be
// transcribed are left out.
type InspirationTranscriber struct {
	cor.BaseCommand
	source InspirationSource
}

// NewInspirationTranscriber creates the command reading InspirationURLsParam and writing InspirationParam.
func NewInspirationTranscriber(name string, source InspirationSource) *InspirationTranscriber {
	out := &InspirationTranscriber{BaseCommand: *cor.NewBaseCommand(name), source: source}
	out.InputParamName = InspirationURLsParam
	out.OutputParamName = InspirationParam
	return out
}

// IsExecutable is false when the request carries no inspiration URL.
func (c *InspirationTranscriber) IsExecutable(context cor.Context) bool {
	urls, _ := cor.Value[[]string](context, c.GetInputParam())
	return c.BaseCommand.IsExecutable(context) && len(urls) > 0
}

// Execute transcribes the URLs into the project named by ProjectParam. An
// empty result is logged, not failed.
func (c *InspirationTranscriber) Execute(context cor.Context) {
	urls, _ := cor.Value[[]string](context, c.GetInputParam())
	project := stringParam(context, ProjectParam)

	slog.InfoContext(context.GetContext(), "transcribing inspiration videos", "videos", len(urls), "project", project)
	text := c.source.TranscribeVideos(context.GetContext(), urls, project)
	if text == "" {
		slog.WarnContext(context.GetContext(), "no transcription content obtained from videos")
	} else {
		slog.InfoContext(context.GetContext(), "transcription completed", "chars", len(text))
	}

	c.Succeed(context)
	context.Add(c.GetOutputParam(), text)
}
