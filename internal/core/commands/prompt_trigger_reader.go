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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
)

// PromptTriggerToGCSObject parses the Cloud Storage notification received
// from Pub/Sub into a *cloud.GCSObject, published both under
// cloud.GCSObjectParam and as the command output.
type PromptTriggerToGCSObject struct {
	cor.BaseCommand
}

// NewPromptTriggerToGCSObject creates the command; it reads the raw message from cor.CtxIn.
func NewPromptTriggerToGCSObject(name string) *PromptTriggerToGCSObject {
	return &PromptTriggerToGCSObject{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute decodes the notification and fails when it names no object.
func (c *PromptTriggerToGCSObject) Execute(context cor.Context) {
	in, ok := cor.Value[string](context, c.GetInputParam())
	if !ok {
		c.Fail(context, fmt.Errorf("unexpected notification payload %T", context.Get(c.GetInputParam())))
		return
	}

	var out cloud.GCSPubSubNotification
	if err := json.Unmarshal([]byte(in), &out); err != nil {
		c.Fail(context, fmt.Errorf("failed to unmarshal GCS notification: %w", err))
		return
	}
	if out.Bucket == "" || out.Name == "" {
		c.Fail(context, errors.New("GCS notification without bucket or object name"))
		return
	}

	c.Succeed(context)
	msg := &cloud.GCSObject{Bucket: out.Bucket, Name: out.Name, MIMEType: out.ContentType}
	context.Add(cloud.GCSObjectParam, msg)
	context.Add(c.GetOutputParam(), msg)
}
