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

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// ScriptSectionsGenerator writes the script body, or reuses the caller's
// script text verbatim when regeneration is turned off.
type ScriptSectionsGenerator struct {
	cor.BaseCommand
	generator *agents.Generator
	defaults  cloud.Generation
}

// NewScriptSectionsGenerator creates the command.
//
// Inputs:
//   - name: The command name, used for logging and telemetry.
//   - generator: The shared generator the sections are written with.
//   - defaults: Duration and section count used when the request leaves them out.
//
// Outputs:
//   - *ScriptSectionsGenerator: The command, reading ScriptRequestParam and
//     writing an *agents.SectionsResult to ScriptParam.
func NewScriptSectionsGenerator(name string, generator *agents.Generator, defaults cloud.Generation) *ScriptSectionsGenerator {
	out := &ScriptSectionsGenerator{
		BaseCommand: *cor.NewBaseCommand(name),
		generator:   generator,
		defaults:    defaults,
	}
	out.InputParamName = ScriptRequestParam
	out.OutputParamName = ScriptParam
	return out
}

func intOr(v *int, fallback int) int {
	if v == nil || *v <= 0 {
		return fallback
	}
	return *v
}

// Execute generates the sections, or republishes the request script text
// when regeneration is off. A missing script text is a validation error.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (c *ScriptSectionsGenerator) Execute(context cor.Context) {
	req, _ := cor.Value[*model.ScriptGenerationRequest](context, c.GetInputParam())

	if !req.ShouldRegenerate() {
		text := model.StringValue(req.ScriptText)
		if text == "" {
			c.Fail(context, model.NewValidationError(model.MissingScriptTextHint))
			return
		}
		slog.InfoContext(context.GetContext(), "using provided script text, skipping script generation")
		c.Succeed(context)
		context.Add(c.GetOutputParam(), &agents.SectionsResult{ScriptText: text})
		return
	}

	result, err := agents.GenerateSections(context.GetContext(), c.generator, agents.SectionsInput{
		Description: req.Description,
		UseCase:     req.UseCase,
		Style:       req.Style,
		Language:    req.Language,
		Duration:    intOr(req.Duration, c.defaults.DefaultDuration),
		NbSection:   intOr(req.NbSection, c.defaults.DefaultNbSections),
		Inspiration: stringParam(context, InspirationParam),
	})
	if err != nil {
		c.Fail(context, err)
		return
	}
	c.Succeed(context)
	context.Add(c.GetOutputParam(), result)
}
