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

package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/services"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-script-generation/internal/testutil"
	"github.com/zeebo/assert"
)

func newScriptService(llm *test.ScriptedModel, inspirations *test.ScriptedInspirations) *services.ScriptService {
	config := test.GetConfig()
	generator := agents.NewGenerator(test.SeededStore(), llm)
	return &services.ScriptService{
		ScriptWorkflow:     workflow.NewScriptGenerationWorkflow(config, generator, inspirations),
		ContextualWorkflow: workflow.NewContextualDescriptionWorkflow(generator, inspirations),
		LLM:                generator,
		Transcription:      inspirations,
		ModelName:          generator.ModelName(),
		Defaults:           config.Generation,
	}
}

func TestScriptServiceGenerate(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{
		"SINGLE":      "Body.",
		"TITLE":       "'Title'",
		"KEYWORDS":    "k1, k2",
		"DESCRIPTION": "Desc.",
	})
	inspirations := &test.ScriptedInspirations{Transcripts: map[string]string{"https://youtu.be/abc": "abc text"}}
	svc := newScriptService(llm, inspirations)

	out, err := svc.Generate(context.Background(), &model.ScriptGenerationRequest{
		Title:             "Project X",
		Description:       "About X",
		UseCase:           "educational",
		Language:          "en",
		Style:             "professional",
		VideoInspirations: []string{"https://youtu.be/abc"},
	})
	test.HandleErr(err, t)
	assert.Equal(t, "Body.", out.ScriptText)
	assert.Equal(t, "Title", out.Title)
	assert.Equal(t, "k1, k2", out.Keywords)
	assert.Equal(t, "Desc.", out.VideoDescription)
	assert.DeepEqual(t, inspirations.Projects(), []string{"Project X"})
}

func TestScriptServiceSurfacesStageError(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{"SINGLE": "Body."})
	llm.Errors["SINGLE"] = errors.New("quota exceeded")
	svc := newScriptService(llm, &test.ScriptedInspirations{})

	_, err := svc.Generate(context.Background(), &model.ScriptGenerationRequest{
		Title: "t", Description: "d", UseCase: "tutorial", Language: "en", Style: "casual",
	})
	assert.Error(t, err)
	assert.True(t, model.IsUpstreamCallError(err))
}

func TestScriptServiceContextualDescription(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{"X_THINGS": "Five things."})
	svc := newScriptService(llm, &test.ScriptedInspirations{})

	out, err := svc.GenerateContextualDescription(context.Background(), &model.ContextualDescriptionRequest{
		Title: "Habits", Language: "pt", TypeVideo: model.VideoTypeXThingsToDo,
	})
	test.HandleErr(err, t)
	assert.Equal(t, "Five things.", out.ContextualDescription)
	assert.Equal(t, model.StatusContextualDescriptionGenerated, out.Status)
}

func TestScriptServiceHealth(t *testing.T) {
	svc := newScriptService(test.NewScriptedModel(nil), &test.ScriptedInspirations{Unavailable: true})

	report := svc.Health(context.Background())
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "available", report.Services["llm"])
	assert.Equal(t, "unavailable", report.Services["transcription"])
	assert.Equal(t, "scripted-model", report.Config.LLMModel)
	assert.Equal(t, 30, report.Config.DefaultDuration)
	assert.Equal(t, 1, report.Config.DefaultNbSections)
}

func TestHealthWithTestClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := test.GetConfig()
	cloudClients, err := cloud.NewServiceClients(ctx, config)
	test.HandleErr(err, t)
	defer func() { _ = cloudClients.Close(ctx) }()

	// the test configuration carries no API key
	svc := &services.ScriptService{LLM: cloudClients.LLM, ModelName: cloudClients.LLM.ModelName(), Defaults: config.Generation}
	report := svc.Health(ctx)
	assert.Equal(t, "unavailable", report.Services["llm"])
	assert.Equal(t, "unavailable", report.Services["transcription"])
	assert.Equal(t, config.LLM.Model, report.Config.LLMModel)
}

func TestPromptServiceListClampsPaging(t *testing.T) {
	svc := &services.PromptService{Store: test.SeededStore()}

	all, err := svc.List(context.Background(), -3, 0)
	test.HandleErr(err, t)
	assert.Equal(t, len(test.SeedPrompts), len(all))

	page, err := svc.List(context.Background(), 1, 2)
	test.HandleErr(err, t)
	assert.Equal(t, 2, len(page))
}

func TestPromptServiceMigrate(t *testing.T) {
	svc := &services.PromptService{Store: prompts.NewMemoryStore()}
	_, err := svc.Migrate(context.Background())
	assert.Error(t, err)

	dir := t.TempDir()
	test.HandleErr(os.WriteFile(filepath.Join(dir, "title_prompt.txt"), []byte("T {description}"), 0o600), t)
	manifest, err := prompts.ParseManifest([]byte(`
prompts:
  - name: title_prompt
    type: title
    files:
      en: title_prompt.txt
      es: title_prompt.es.txt
`))
	test.HandleErr(err, t)
	svc.Migrator = prompts.NewMigrator(manifest, prompts.DirSource{Dir: dir}, svc.Store)

	report, err := svc.Migrate(context.Background())
	test.HandleErr(err, t)
	assert.DeepEqual(t, report.Upserted, []string{"title_prompt/en"})
	assert.DeepEqual(t, report.Skipped, []string{"title_prompt.es.txt"})
}
