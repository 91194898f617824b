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

package workflow

import (
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
)

// ContextualDescriptionWorkflow transcribes the inspiration videos, if any,
// then writes a contextual description for the
// *model.ContextualDescriptionRequest under commands.ContextualRequestParam.
type ContextualDescriptionWorkflow struct {
	cor.BaseCommand
	generator    *agents.Generator
	inspirations commands.InspirationSource
	chain        *cor.BaseChain
}

func (w *ContextualDescriptionWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *ContextualDescriptionWorkflow) IsExecutable(context cor.Context) bool {
	return w.chain.IsExecutable(context)
}

// Commands returns the stage names in execution order.
func (w *ContextualDescriptionWorkflow) Commands() []string {
	return w.chain.Commands()
}

func (w *ContextualDescriptionWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewInspirationTranscriber("transcribe-inspirations", w.inspirations))
	out.AddCommand(commands.NewContextualDescriptionGenerator("generate-contextual-description", w.generator))
	w.chain = out
}

// NewContextualDescriptionWorkflow builds the workflow and its chain.
func NewContextualDescriptionWorkflow(generator *agents.Generator, inspirations commands.InspirationSource) *ContextualDescriptionWorkflow {
	out := &ContextualDescriptionWorkflow{
		BaseCommand:  *cor.NewBaseCommand("contextual-description-workflow"),
		generator:    generator,
		inspirations: inspirations,
	}
	out.initializeChain()
	return out
}
