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

package workflow_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-script-generation/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextualDescriptionWorkflow(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{"LIFE_LESSON": "  A story about patience.  "})
	inspirations := &test.ScriptedInspirations{Transcripts: map[string]string{goodVideo: "the tortoise and the hare"}}
	w := workflow.NewContextualDescriptionWorkflow(agents.NewGenerator(test.SeededStore(), llm), inspirations)
	assert.Equal(t, []string{"transcribe-inspirations", "generate-contextual-description"}, w.Commands())

	req := &model.ContextualDescriptionRequest{
		Title:             "Patience",
		Duration:          ptr(300),
		InspirationVideos: []string{goodVideo, badVideo},
		Language:          "it",
		TypeVideo:         model.VideoTypeLifeLesson,
	}
	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.ContextualRequestParam, req)
	chainCtx.Add(commands.InspirationURLsParam, req.InspirationVideos)
	chainCtx.Add(commands.ProjectParam, req.Title)

	w.Execute(chainCtx)
	require.NoError(t, chainCtx.Err())

	out, ok := cor.Value[*model.ContextualDescriptionResponse](chainCtx, commands.ContextualResponseParam)
	require.True(t, ok)
	assert.Equal(t, "A story about patience.", out.ContextualDescription)
	assert.Equal(t, model.StatusContextualDescriptionGenerated, out.Status)

	sent, ok := llm.Request("LIFE_LESSON")
	require.True(t, ok)
	assert.Contains(t, sent.User, "Title of the video project: Patience.")
	assert.Contains(t, sent.User, "the tortoise and the hare")
	assert.Contains(t, sent.User, "around 300 seconds long")
	assert.Contains(t, sent.User, "longer video")
	assert.Equal(t, 1500, sent.MaxTokens)
}

func TestContextualDescriptionWorkflowUnknownTemplate(t *testing.T) {
	store := test.SeededStore()
	llm := test.NewScriptedModel(nil)
	w := workflow.NewContextualDescriptionWorkflow(agents.NewGenerator(store, llm), &test.ScriptedInspirations{})

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.ContextualRequestParam, &model.ContextualDescriptionRequest{
		Title: "x", Language: "en", TypeVideo: "COOKING",
	})

	w.Execute(chainCtx)
	require.Error(t, chainCtx.Err())
	assert.True(t, model.IsTemplateNotFoundError(chainCtx.Err()))
	assert.Equal(t, "Prompt 'contextual_description_cooking' not found in database for any language", chainCtx.Err().Error())
	assert.Empty(t, llm.Requests())
}
