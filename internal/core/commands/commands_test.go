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

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/commands"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	test "github.com/jaycherian/gcp-go-script-generation/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newContext(params map[string]any) cor.Context {
	ctx := cor.NewBaseContext()
	ctx.SetContext(context.Background())
	for k, v := range params {
		ctx.Add(k, v)
	}
	return ctx
}

func scriptRequest() *model.ScriptGenerationRequest {
	return &model.ScriptGenerationRequest{
		Title:       "Morning routines",
		Description: "Why mornings matter",
		UseCase:     "youtube_short",
		Language:    "en",
		Style:       "casual",
	}
}

func TestScriptRequestValidator(t *testing.T) {
	validator := commands.NewScriptRequestValidator("validate")

	req := scriptRequest()
	ctx := newContext(map[string]any{commands.ScriptRequestParam: req})
	validator.Execute(ctx)
	assert.NoError(t, ctx.Err())

	req.RegenererScript = ptr(false)
	ctx = newContext(map[string]any{commands.ScriptRequestParam: req})
	validator.Execute(ctx)
	require.Error(t, ctx.Err())
	assert.True(t, model.IsValidationError(ctx.Err()))
	assert.Contains(t, ctx.Err().Error(), "script_text must be provided")

	req.ScriptText = ptr("my script")
	ctx = newContext(map[string]any{commands.ScriptRequestParam: req})
	validator.Execute(ctx)
	assert.NoError(t, ctx.Err())
}

func TestInspirationTranscriberSkipsWithoutURLs(t *testing.T) {
	source := &test.ScriptedInspirations{Transcripts: map[string]string{"https://youtu.be/a": "alpha"}}
	stage := commands.NewInspirationTranscriber("transcribe", source)

	assert.False(t, stage.IsExecutable(newContext(nil)))
	assert.False(t, stage.IsExecutable(newContext(map[string]any{commands.InspirationURLsParam: []string{}})))

	ctx := newContext(map[string]any{
		commands.InspirationURLsParam: []string{"https://youtu.be/a", "https://youtu.be/missing"},
		commands.ProjectParam:         "Morning routines",
	})
	require.True(t, stage.IsExecutable(ctx))
	stage.Execute(ctx)

	assert.NoError(t, ctx.Err())
	assert.Equal(t, "alpha", ctx.Get(commands.InspirationParam))
	assert.Equal(t, []string{"Morning routines"}, source.Projects())
}

func TestScriptSectionsGeneratorReusesScriptVerbatim(t *testing.T) {
	llm := test.NewScriptedModel(nil)
	stage := commands.NewScriptSectionsGenerator("sections", agents.NewGenerator(test.SeededStore(), llm), cloud.Generation{})

	req := scriptRequest()
	req.RegenerateScript = ptr(false)
	req.ScriptText = ptr("  my own script\n")
	ctx := newContext(map[string]any{commands.ScriptRequestParam: req})
	stage.Execute(ctx)

	require.NoError(t, ctx.Err())
	script, ok := cor.Value[*agents.SectionsResult](ctx, commands.ScriptParam)
	require.True(t, ok)
	assert.Equal(t, "  my own script\n", script.ScriptText)
	assert.Empty(t, script.Sections)
	assert.Empty(t, llm.Requests())
}

func TestScriptSectionsGeneratorAppliesConfiguredDefaults(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{
		"MULTIPLE": "one ---SECTION--- two",
	})
	stage := commands.NewScriptSectionsGenerator("sections", agents.NewGenerator(test.SeededStore(), llm),
		cloud.Generation{DefaultDuration: 90, DefaultNbSections: 2})

	ctx := newContext(map[string]any{
		commands.ScriptRequestParam: scriptRequest(),
		commands.InspirationParam:   "alpha",
	})
	stage.Execute(ctx)

	require.NoError(t, ctx.Err())
	script, _ := cor.Value[*agents.SectionsResult](ctx, commands.ScriptParam)
	assert.Equal(t, []string{"one", "two"}, script.Sections)

	sent, ok := llm.Request("MULTIPLE")
	require.True(t, ok)
	assert.Contains(t, sent.User, "nb=2")
	assert.Contains(t, sent.User, "1 minute and 30 seconds")
	assert.Contains(t, sent.User, "inspiration=alpha")
}

func TestScriptResponseAssemblerReturnsSectionsOnlyForMany(t *testing.T) {
	script := &agents.SectionsResult{Sections: []string{"one", "two"}, ScriptText: "one\n\ntwo"}
	for _, tc := range []struct {
		name      string
		nbSection *int
		want      []string
	}{
		{"unset", nil, nil},
		{"one", ptr(1), nil},
		{"two", ptr(2), []string{"one", "two"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := scriptRequest()
			req.NbSection = tc.nbSection
			ctx := newContext(map[string]any{
				commands.ScriptRequestParam: req,
				commands.ScriptParam:        script,
				commands.TitleParam:         "A Title",
				commands.KeywordsParam:      "a, b",
				commands.DescriptionParam:   "desc",
			})
			commands.NewScriptResponseAssembler("assemble").Execute(ctx)

			out, ok := cor.Value[*model.ScriptGenerationResponse](ctx, commands.ScriptResponseParam)
			require.True(t, ok)
			assert.Equal(t, tc.want, out.ScriptSections)
			assert.Equal(t, "one\n\ntwo", out.ScriptText)
			assert.Equal(t, model.StatusScriptGenerated, out.Status)
			assert.Equal(t, "A Title", out.Title)
			assert.Equal(t, "a, b", out.Keywords)
			assert.Equal(t, "desc", out.VideoDescription)
		})
	}
}

func TestKeywordsGeneratorUsesEnglishTemplate(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{"KEYWORDS": "focus, habits"})
	stage := commands.NewKeywordsGenerator("keywords", agents.NewGenerator(test.SeededStore(), llm))

	req := scriptRequest()
	req.Language = "fr"
	ctx := newContext(map[string]any{
		commands.ScriptRequestParam: req,
		commands.ScriptParam:        &agents.SectionsResult{ScriptText: "body"},
		commands.TitleParam:         "Le titre",
	})
	stage.Execute(ctx)

	require.NoError(t, ctx.Err())
	assert.Equal(t, "focus, habits", ctx.Get(commands.KeywordsParam))
	sent, ok := llm.Request("KEYWORDS")
	require.True(t, ok)
	assert.Contains(t, sent.User, "title=Le titre")
	assert.Contains(t, sent.User, "description=Why mornings matter")
}

func TestContextualDescriptionGenerator(t *testing.T) {
	llm := test.NewScriptedModel(map[string]string{"STOICISM": "Be like the rock."})
	stage := commands.NewContextualDescriptionGenerator("contextual", agents.NewGenerator(test.SeededStore(), llm))

	ctx := newContext(map[string]any{
		commands.ContextualRequestParam: &model.ContextualDescriptionRequest{
			Title:     "Calm",
			Language:  "en",
			TypeVideo: model.VideoTypeStoicism,
		},
		commands.InspirationParam: "Marcus said",
	})
	stage.Execute(ctx)

	require.NoError(t, ctx.Err())
	out, ok := cor.Value[*model.ContextualDescriptionResponse](ctx, commands.ContextualResponseParam)
	require.True(t, ok)
	assert.Equal(t, "Be like the rock.", out.ContextualDescription)
	assert.Equal(t, model.StatusContextualDescriptionGenerated, out.Status)
	sent, _ := llm.Request("STOICISM")
	assert.Contains(t, sent.User, "Marcus said")
}

func TestPromptTriggerToGCSObject(t *testing.T) {
	stage := commands.NewPromptTriggerToGCSObject("trigger")

	ctx := newContext(map[string]any{cor.CtxIn: test.GetTestPromptMessageText("prompts-bucket", "prompts/title_prompt.txt")})
	stage.Execute(ctx)
	require.NoError(t, ctx.Err())
	obj, ok := cor.Value[*cloud.GCSObject](ctx, cloud.GCSObjectParam)
	require.True(t, ok)
	assert.Equal(t, "prompts-bucket", obj.Bucket)
	assert.Equal(t, "prompts/title_prompt.txt", obj.Name)
	assert.Equal(t, "text/plain", obj.MIMEType)

	ctx = newContext(map[string]any{cor.CtxIn: `{"kind":"storage#object"}`})
	stage.Execute(ctx)
	assert.Error(t, ctx.Err())

	ctx = newContext(map[string]any{cor.CtxIn: `not json`})
	stage.Execute(ctx)
	assert.Error(t, ctx.Err())
}

const manifestYAML = `
prompts:
  - name: title_prompt
    type: title
    files:
      en: title_prompt.txt
      fr: title_prompt.fr.txt
`

func newMigrator(t *testing.T) (*prompts.Migrator, *prompts.MemoryStore) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "title_prompt.fr.txt"), []byte("TITRE {description}"), 0o600))
	manifest, err := prompts.ParseManifest([]byte(manifestYAML))
	require.NoError(t, err)
	store := prompts.NewMemoryStore()
	return prompts.NewMigrator(manifest, prompts.DirSource{Dir: dir}, store), store
}

func TestPromptObjectMigrator(t *testing.T) {
	migrator, store := newMigrator(t)
	stage := commands.NewPromptObjectMigrator("upsert", migrator, "prompts-bucket")

	ctx := newContext(map[string]any{cloud.GCSObjectParam: &cloud.GCSObject{Bucket: "prompts-bucket", Name: "prompts/title_prompt.fr.txt"}})
	stage.Execute(ctx)
	require.NoError(t, ctx.Err())
	prompt, ok := cor.Value[*prompts.Prompt](ctx, commands.PromptParam)
	require.True(t, ok)
	assert.Equal(t, "title_prompt_fr", prompt.Name)

	content, err := store.Get(context.Background(), prompts.Key{Name: "title_prompt", Language: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "TITRE {description}", content)
}

func TestPromptObjectMigratorIgnoresUnlistedObjects(t *testing.T) {
	migrator, _ := newMigrator(t)
	stage := commands.NewPromptObjectMigrator("upsert", migrator, "prompts-bucket")

	ctx := newContext(map[string]any{cloud.GCSObjectParam: &cloud.GCSObject{Bucket: "prompts-bucket", Name: "README.md"}})
	stage.Execute(ctx)
	assert.NoError(t, ctx.Err())
	assert.Nil(t, ctx.Get(commands.PromptParam))
}

func TestPromptObjectMigratorRejectsOtherBuckets(t *testing.T) {
	migrator, _ := newMigrator(t)
	stage := commands.NewPromptObjectMigrator("upsert", migrator, "prompts-bucket")

	ctx := newContext(map[string]any{cloud.GCSObjectParam: &cloud.GCSObject{Bucket: "elsewhere", Name: "title_prompt.txt"}})
	stage.Execute(ctx)
	assert.Error(t, ctx.Err())
}
