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
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// ContextualDescriptionGenerator writes a description framed by the video
// type, grounded on the inspiration transcripts when there are any.
type ContextualDescriptionGenerator struct {
	cor.BaseCommand
	generator *agents.Generator
}

// NewContextualDescriptionGenerator creates the command.
//
// Inputs:
//   - name: The command name, used for logging and telemetry.
//   - generator: The shared generator the description is written with.
//
// Outputs:
//   - *ContextualDescriptionGenerator: The command, reading ContextualRequestParam
//     and writing a *model.ContextualDescriptionResponse to ContextualResponseParam.
func NewContextualDescriptionGenerator(name string, generator *agents.Generator) *ContextualDescriptionGenerator {
	out := &ContextualDescriptionGenerator{BaseCommand: *cor.NewBaseCommand(name), generator: generator}
	out.InputParamName = ContextualRequestParam
	out.OutputParamName = ContextualResponseParam
	return out
}

// Execute writes the description for the request, using the joined
// transcripts under InspirationParam when present.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (c *ContextualDescriptionGenerator) Execute(context cor.Context) {
	req, _ := cor.Value[*model.ContextualDescriptionRequest](context, c.GetInputParam())

	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}
	text, err := agents.GenerateContextualDescription(context.GetContext(), c.generator, agents.ContextualInput{
		Title:       req.Title,
		Description: model.StringValue(req.Description),
		Inspiration: stringParam(context, InspirationParam),
		TypeVideo:   req.TypeVideo,
		Language:    req.Language,
		Duration:    duration,
	})
	if err != nil {
		c.Fail(context, err)
		return
	}

	c.Succeed(context)
	context.Add(c.GetOutputParam(), &model.ContextualDescriptionResponse{
		ContextualDescription: text,
		Status:                model.StatusContextualDescriptionGenerated,
	})
}
