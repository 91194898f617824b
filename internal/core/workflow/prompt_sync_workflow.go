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
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
)

// PromptSyncWorkflow keeps the prompt store in step with the prompts
// bucket. It is driven by a PubSubListener receiving the bucket's
// OBJECT_FINALIZE notifications: the notification is parsed and the prompt
// file it names is upserted.
type PromptSyncWorkflow struct {
	cor.BaseCommand
	migrator *prompts.Migrator
	bucket   string
	chain    *cor.BaseChain
}

func (w *PromptSyncWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *PromptSyncWorkflow) IsExecutable(context cor.Context) bool {
	return w.chain.IsExecutable(context)
}

// Commands returns the stage names in execution order.
func (w *PromptSyncWorkflow) Commands() []string {
	return w.chain.Commands()
}

func (w *PromptSyncWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.AddCommand(commands.NewPromptTriggerToGCSObject("prompt-trigger-to-gcs-object"))
	out.AddCommand(commands.NewPromptObjectMigrator("upsert-prompt", w.migrator, w.bucket))
	w.chain = out
}

// NewPromptSyncWorkflow builds the workflow for the prompt files of bucket;
// migrator must read from that bucket.
func NewPromptSyncWorkflow(migrator *prompts.Migrator, bucket string) *PromptSyncWorkflow {
	out := &PromptSyncWorkflow{
		BaseCommand: *cor.NewBaseCommand("prompt-sync-workflow"),
		migrator:    migrator,
		bucket:      bucket,
	}
	out.initializeChain()
	return out
}
