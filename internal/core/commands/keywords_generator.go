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

// KeywordsGenerator derives SEO keywords from the script and the request
// description. Keywords always use the English template.
type KeywordsGenerator struct {
	cor.BaseCommand
	generator *agents.Generator
}

// NewKeywordsGenerator creates the command reading ScriptParam and writing KeywordsParam.
func NewKeywordsGenerator(name string, generator *agents.Generator) *KeywordsGenerator {
	out := &KeywordsGenerator{BaseCommand: *cor.NewBaseCommand(name), generator: generator}
	out.InputParamName = ScriptParam
	out.OutputParamName = KeywordsParam
	return out
}

// Execute generates the keywords with the English template.
func (c *KeywordsGenerator) Execute(context cor.Context) {
	script, _ := cor.Value[*agents.SectionsResult](context, c.GetInputParam())
	req, _ := cor.Value[*model.ScriptGenerationRequest](context, ScriptRequestParam)

	keywords, err := agents.GenerateKeywords(context.GetContext(), c.generator,
		stringParam(context, TitleParam), script.ScriptText, req.Description, req.UseCase, model.DefaultLanguage)
	if err != nil {
		c.Fail(context, err)
		return
	}
	c.Succeed(context)
	context.Add(c.GetOutputParam(), keywords)
}
