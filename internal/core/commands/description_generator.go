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

// DescriptionGenerator writes the video description from the script and the
// generated keywords.
type DescriptionGenerator struct {
	cor.BaseCommand
	generator *agents.Generator
}

// NewDescriptionGenerator creates the command reading ScriptParam and writing DescriptionParam.
func NewDescriptionGenerator(name string, generator *agents.Generator) *DescriptionGenerator {
	out := &DescriptionGenerator{BaseCommand: *cor.NewBaseCommand(name), generator: generator}
	out.InputParamName = ScriptParam
	out.OutputParamName = DescriptionParam
	return out
}

// Execute generates the description with the title and keywords of the earlier stages.
func (c *DescriptionGenerator) Execute(context cor.Context) {
	script, _ := cor.Value[*agents.SectionsResult](context, c.GetInputParam())
	req, _ := cor.Value[*model.ScriptGenerationRequest](context, ScriptRequestParam)

	description, err := agents.GenerateDescription(context.GetContext(), c.generator,
		stringParam(context, TitleParam), script.ScriptText, stringParam(context, KeywordsParam), req.UseCase, req.Language)
	if err != nil {
		c.Fail(context, err)
		return
	}
	c.Succeed(context)
	context.Add(c.GetOutputParam(), description)
}
