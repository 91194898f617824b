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

// Package model holds the request, response and error types exchanged
// between the HTTP layer and the generation core.
package model

// Status markers returned on success.
const (
	StatusScriptGenerated                = "script_generated"
	StatusContextualDescriptionGenerated = "contextual_description_generated"
)

// Video types accepted by the contextual description generator.
const (
	VideoTypeLifeLesson   = "LIFE_LESSON"
	VideoTypeStoicism     = "STOICISM"
	VideoTypeXThingsToDo  = "X_THINGS_TO_DO"
	DefaultLanguage       = "en"
	InspirationSeparator  = "\n\n---\n\n"
	MissingScriptTextHint = "script_text must be provided when regenerer_script=False"
)

// ScriptGenerationRequest is the body of POST /scripts/generate.
type ScriptGenerationRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	VideoInspirations []string `json:"video_inspirations,omitempty"`
	UseCase           string   `json:"use_case" binding:"required,oneof=storytelling youtube_short explanation commercial inspirational educational tutorial"`
	Language          string   `json:"language" binding:"required,oneof=en fr es de it pt"`
	Style             string   `json:"style" binding:"required,oneof=educational inspirational comedic dramatic casual professional"`
	Keywords          *string  `json:"keywords,omitempty"`
	ScriptText        *string  `json:"script_text,omitempty"`
	RegenererScript   *bool    `json:"regenerer_script,omitempty"`
	RegenerateScript  *bool    `json:"regenerate_script,omitempty"` // English alias of regenerer_script
	Duration          *int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	NbSection         *int     `json:"nb_section,omitempty" binding:"omitempty,min=1"`
}

// ShouldRegenerate reports whether the script must be generated. It
// defaults to true; regenerer_script wins over its alias when both are set.
func (r *ScriptGenerationRequest) ShouldRegenerate() bool {
	switch {
	case r.RegenererScript != nil:
		return *r.RegenererScript
	case r.RegenerateScript != nil:
		return *r.RegenerateScript
	default:
		return true
	}
}

// ScriptGenerationResponse is the body returned by POST /scripts/generate.
type ScriptGenerationResponse struct {
	ScriptSections   []string `json:"script_sections"`
	ScriptText       string   `json:"script_text"`
	Status           string   `json:"status"`
	Keywords         string   `json:"keywords"`
	VideoDescription string   `json:"video_description"`
	Title            string   `json:"title"`
}

// ContextualDescriptionRequest is the body of
// POST /scripts/description-contextuel/generate.
type ContextualDescriptionRequest struct {
	Title             string   `json:"title" binding:"required"`
	Duration          *int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	InspirationVideos []string `json:"inspiration_videos,omitempty"`
	Language          string   `json:"language" binding:"required"`
	TypeVideo         string   `json:"type_video" binding:"required,oneof=LIFE_LESSON STOICISM X_THINGS_TO_DO"`
	Description       *string  `json:"description,omitempty"`
}

type ContextualDescriptionResponse struct {
	ContextualDescription string `json:"contextual_description"`
	Status                string `json:"status"`
}

// HealthReport is the body of GET /scripts/health.
type HealthReport struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
	Config   HealthConfig      `json:"config"`
}

type HealthConfig struct {
	DefaultDuration   int    `json:"default_duration"`
	DefaultNbSections int    `json:"default_nb_sections"`
	LLMModel          string `json:"llm_model"`
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
