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
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// ScriptRequestValidator rejects requests the pipeline cannot serve before
// any transcription or generation call is made.
type ScriptRequestValidator struct {
	cor.BaseCommand
}

// NewScriptRequestValidator creates the first stage of the script workflow.
func NewScriptRequestValidator(name string) *ScriptRequestValidator {
	out := &ScriptRequestValidator{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = ScriptRequestParam
	return out
}

// Execute fails with a validation error when the request cannot be served.
func (c *ScriptRequestValidator) Execute(context cor.Context) {
	req, ok := cor.Value[*model.ScriptGenerationRequest](context, c.GetInputParam())
	if !ok || req == nil {
		c.Fail(context, model.NewValidationError("missing script generation request"))
		return
	}
	if !req.ShouldRegenerate() && model.StringValue(req.ScriptText) == "" {
		c.Fail(context, model.NewValidationError(model.MissingScriptTextHint))
		return
	}
	c.Succeed(context)
}
