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

// Package commands holds the stages the generation workflows are chained
// from. Each stage is a cor.Command reading its inputs from, and writing its
// result to, the keys declared below.
package commands

import (
	"context"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
)

// Context keys shared by the stages.
const (
	ScriptRequestParam      = "__SCRIPT_REQUEST__"      // *model.ScriptGenerationRequest
	ContextualRequestParam  = "__CONTEXTUAL_REQUEST__"  // *model.ContextualDescriptionRequest
	InspirationURLsParam    = "__INSPIRATION_URLS__"    // []string
	ProjectParam            = "__PROJECT__"             // string, names the transcript cache directory
	InspirationParam        = "__INSPIRATION__"         // string, joined transcripts
	ScriptParam             = "__SCRIPT__"              // *agents.SectionsResult
	TitleParam              = "__TITLE__"               // string
	KeywordsParam           = "__KEYWORDS__"            // string
	DescriptionParam        = "__DESCRIPTION__"         // string
	ScriptResponseParam     = "__SCRIPT_RESPONSE__"     // *model.ScriptGenerationResponse
	ContextualResponseParam = "__CONTEXTUAL_RESPONSE__" // *model.ContextualDescriptionResponse
	PromptParam             = "__PROMPT__"              // *prompts.Prompt
)

// InspirationSource transcribes inspiration videos; failures are dropped.
type InspirationSource interface {
	TranscribeVideos(ctx context.Context, urls []string, project string) string
}

// stringParam returns the string stored under key, or "".
func stringParam(context cor.Context, key string) string {
	v, _ := cor.Value[string](context, key)
	return v
}
