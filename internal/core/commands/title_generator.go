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

// TitleGenerator proposes the video title from the request.
type TitleGenerator struct {
	cor.BaseCommand
	generator *agents.Generator
}

// NewTitleGenerator creates the command reading ScriptRequestParam and writing TitleParam.
func NewTitleGenerator(name string, generator *agents.Generator) *TitleGenerator {
	out := &TitleGenerator{BaseCommand: *cor.NewBaseCommand(name), generator: generator}
	out.InputParamName = ScriptRequestParam
	out.OutputParamName = TitleParam
	return out
}

// Execute generates the title in the request language.
func (c *TitleGenerator) Execute(context cor.Context) {
	req, _ := cor.Value[*model.ScriptGenerationRequest](context, c.GetInputParam())

	title, err := agents.GenerateTitle(context.GetContext(), c.generator, req.Description, req.UseCase, req.Style, req.Language)
	if err != nil {
		c.Fail(context, err)
		return
	}
	c.Succeed(context)
	context.Add(c.GetOutputParam(), title)
}
