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

// ScriptResponseAssembler gathers the outputs of the previous stages into
// the response. The section list is only returned when the caller asked for
// more than one section.
type ScriptResponseAssembler struct {
	cor.BaseCommand
}

// NewScriptResponseAssembler creates the final stage of the script workflow.
func NewScriptResponseAssembler(name string) *ScriptResponseAssembler {
	out := &ScriptResponseAssembler{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = ScriptParam
	out.OutputParamName = ScriptResponseParam
	return out
}

// Execute builds the *model.ScriptGenerationResponse under ScriptResponseParam.
func (c *ScriptResponseAssembler) Execute(context cor.Context) {
	script, _ := cor.Value[*agents.SectionsResult](context, c.GetInputParam())
	req, _ := cor.Value[*model.ScriptGenerationRequest](context, ScriptRequestParam)

	response := &model.ScriptGenerationResponse{
		ScriptText:       script.ScriptText,
		Status:           model.StatusScriptGenerated,
		Title:            stringParam(context, TitleParam),
		Keywords:         stringParam(context, KeywordsParam),
		VideoDescription: stringParam(context, DescriptionParam),
	}
	if req != nil && req.NbSection != nil && *req.NbSection > 1 {
		response.ScriptSections = script.Sections
	}

	c.Succeed(context)
	context.Add(c.GetOutputParam(), response)
}
