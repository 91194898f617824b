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

// Package services exposes the generation workflows and the prompt store to
// the transport layers (HTTP handlers, CLI). Each call runs its own pipeline
// context; the services hold no per-request state.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// Availability is implemented by the collaborators reported by Health.
type Availability interface {
	Available() bool
}

// ScriptService runs the script and contextual description workflows.
type ScriptService struct {
	ScriptWorkflow     cor.Command
	ContextualWorkflow cor.Command
	LLM                Availability
	Transcription      Availability
	ModelName          string
	Defaults           cloud.Generation
}

// run executes command over a fresh pipeline context seeded with params and
// returns the value left under output.
func run[T any](ctx context.Context, command cor.Command, params map[string]any, output string) (T, error) {
	var zero T

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	runID := uuid.NewString()
	chainCtx.Add(cloud.RunIDParam, runID)
	for k, v := range params {
		chainCtx.Add(k, v)
	}

	command.Execute(chainCtx)
	if err := chainCtx.Err(); err != nil {
		slog.ErrorContext(ctx, "workflow failed", "workflow", command.GetName(), "run_id", runID, "error", err)
		return zero, err
	}
	out, ok := cor.Value[T](chainCtx, output)
	if !ok {
		return zero, fmt.Errorf("workflow %s produced no result", command.GetName())
	}
	slog.InfoContext(ctx, "workflow completed", "workflow", command.GetName(), "run_id", runID)
	return out, nil
}

// Generate produces the script, title, keywords and description for req.
func (s *ScriptService) Generate(ctx context.Context, req *model.ScriptGenerationRequest) (*model.ScriptGenerationResponse, error) {
	slog.InfoContext(ctx, "starting script generation",
		"regenerate", req.ShouldRegenerate(), "use_case", req.UseCase, "language", req.Language)

	return run[*model.ScriptGenerationResponse](ctx, s.ScriptWorkflow, map[string]any{
		commands.ScriptRequestParam:   req,
		commands.InspirationURLsParam: req.VideoInspirations,
		commands.ProjectParam:         req.Title,
	}, commands.ScriptResponseParam)
}

// GenerateContextualDescription writes a contextual description for req.
func (s *ScriptService) GenerateContextualDescription(ctx context.Context, req *model.ContextualDescriptionRequest) (*model.ContextualDescriptionResponse, error) {
	slog.InfoContext(ctx, "starting contextual description generation", "type_video", req.TypeVideo, "language", req.Language)

	return run[*model.ContextualDescriptionResponse](ctx, s.ContextualWorkflow, map[string]any{
		commands.ContextualRequestParam: req,
		commands.InspirationURLsParam:   req.InspirationVideos,
		commands.ProjectParam:           req.Title,
	}, commands.ContextualResponseParam)
}

func availability(a Availability) string {
	if a != nil && a.Available() {
		return "available"
	}
	return "unavailable"
}

// Health reports which collaborators are usable and the generation defaults.
func (s *ScriptService) Health(_ context.Context) model.HealthReport {
	return model.HealthReport{
		Status: "healthy",
		Services: map[string]string{
			"llm":           availability(s.LLM),
			"transcription": availability(s.Transcription),
		},
		Config: model.HealthConfig{
			DefaultDuration:   s.Defaults.DefaultDuration,
			DefaultNbSections: s.Defaults.DefaultNbSections,
			LLMModel:          s.ModelName,
		},
	}
}
