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
	"fmt"
	"log/slog"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
)

// PromptObjectMigrator upserts the prompt file a notification refers to.
// Objects of other buckets fail; objects the manifest does not list are
// ignored so their notification is acknowledged.
type PromptObjectMigrator struct {
	cor.BaseCommand
	migrator *prompts.Migrator
	bucket   string
}

// NewPromptObjectMigrator creates the command.
//
// Inputs:
//   - name: The command name, used for logging and telemetry.
//   - migrator: The migrator holding the manifest, source and store.
//   - bucket: The only bucket notifications are accepted from.
//
// Outputs:
//   - *PromptObjectMigrator: The command, reading cloud.GCSObjectParam and
//     writing the upserted *prompts.Prompt to PromptParam.
func NewPromptObjectMigrator(name string, migrator *prompts.Migrator, bucket string) *PromptObjectMigrator {
	out := &PromptObjectMigrator{BaseCommand: *cor.NewBaseCommand(name), migrator: migrator, bucket: bucket}
	out.InputParamName = cloud.GCSObjectParam
	out.OutputParamName = PromptParam
	return out
}

// Execute upserts the notified object.
//
// Inputs:
//   - context: The shared `cor.Context` for this workflow execution.
func (c *PromptObjectMigrator) Execute(context cor.Context) {
	msg, _ := cor.Value[*cloud.GCSObject](context, c.GetInputParam())

	if msg.Bucket != c.bucket {
		c.Fail(context, fmt.Errorf("notification for gs://%s/%s, expected bucket %s", msg.Bucket, msg.Name, c.bucket))
		return
	}
	if _, _, listed := c.migrator.Manifest.Resolve(msg.Name); !listed {
		slog.InfoContext(context.GetContext(), "object is not a prompt template, ignored", "object", msg.Name)
		c.Succeed(context)
		return
	}

	prompt, err := c.migrator.MigrateObject(context.GetContext(), msg.Name)
	if err != nil {
		c.Fail(context, err)
		return
	}
	slog.InfoContext(context.GetContext(), "prompt synchronized", "name", prompt.Name, "language", prompt.Language)
	c.Succeed(context)
	context.Add(c.GetOutputParam(), prompt)
}
