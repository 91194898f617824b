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

// Package workflow assembles the commands into the pipelines the service
// runs: script generation, contextual description generation and prompt
// synchronization.
package workflow

import (
	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
)

// ScriptGenerationWorkflow produces a full script package (script, title,
// keywords and description) from a *model.ScriptGenerationRequest stored
// under commands.ScriptRequestParam. The response is left under
// commands.ScriptResponseParam.
//
// Stages run strictly in order and the first failure stops the chain:
//
//	validate -> transcribe inspirations -> generate or reuse script ->
//	title -> keywords -> description -> assemble response
type ScriptGenerationWorkflow struct {
	cor.BaseCommand
	generator    *agents.Generator
	inspirations commands.InspirationSource
	defaults     cloud.Generation
	chain        *cor.BaseChain
}

func (w *ScriptGenerationWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *ScriptGenerationWorkflow) IsExecutable(context cor.Context) bool {
	return w.chain.IsExecutable(context)
}

// Commands returns the stage names in execution order.
func (w *ScriptGenerationWorkflow) Commands() []string {
	return w.chain.Commands()
}

func (w *ScriptGenerationWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewScriptRequestValidator("validate-script-request"))
	out.AddCommand(commands.NewInspirationTranscriber("transcribe-inspirations", w.inspirations))
	out.AddCommand(commands.NewScriptSectionsGenerator("generate-or-reuse-script", w.generator, w.defaults))
	out.AddCommand(commands.NewTitleGenerator("generate-title", w.generator))
	out.AddCommand(commands.NewKeywordsGenerator("generate-keywords", w.generator))
	out.AddCommand(commands.NewDescriptionGenerator("generate-description", w.generator))
	out.AddCommand(commands.NewScriptResponseAssembler("assemble-script-response"))
	w.chain = out
}

func NewScriptGenerationWorkflow(
	config *cloud.Config,
	generator *agents.Generator,
	inspirations commands.InspirationSource) *ScriptGenerationWorkflow {

	out := &ScriptGenerationWorkflow{
		BaseCommand:  *cor.NewBaseCommand("script-generation-workflow"),
		generator:    generator,
		inspirations: inspirations,
		defaults:     config.Generation,
	}
	out.initializeChain()
	return out
}
