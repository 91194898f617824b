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
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/cor"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/workflow"
	test "github.com/jaycherian/gcp-go-script-generation/internal/testutil"
	"github.com/zeebo/assert"
)

func TestPromptSyncWorkflow(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "keywords_prompt.txt"), []byte("KEYWORDS v2 {title}"), 0o600)
	assert.NoError(t, err)

	manifest, err := prompts.ParseManifest([]byte(`
prompts:
  - name: keywords_prompt
    type: keywords
    files:
      en: keywords_prompt.txt
`))
	assert.NoError(t, err)
	store := test.SeededStore()
	w := workflow.NewPromptSyncWorkflow(prompts.NewMigrator(manifest, prompts.DirSource{Dir: dir}, store), "prompts-bucket")

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, test.GetTestPromptMessageText("prompts-bucket", "templates/keywords_prompt.txt"))

	w.Execute(chainCtx)
	assert.NoError(t, chainCtx.Err())

	content, err := store.Get(ctx, prompts.Key{Name: "keywords_prompt", Language: "en"})
	assert.NoError(t, err)
	assert.Equal(t, "KEYWORDS v2 {title}", content)
}

func TestPromptSyncWorkflowFailsForForeignBucket(t *testing.T) {
	manifest, err := prompts.ParseManifest([]byte("prompts:\n  - name: p\n    files:\n      en: p.txt\n"))
	assert.NoError(t, err)
	w := workflow.NewPromptSyncWorkflow(prompts.NewMigrator(manifest, prompts.DirSource{Dir: t.TempDir()}, prompts.NewMemoryStore()), "prompts-bucket")

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, test.GetTestPromptMessageText("media-bucket", "p.txt"))

	w.Execute(chainCtx)
	assert.Error(t, chainCtx.Err())
	assert.DeepEqual(t, w.Commands(), []string{"prompt-trigger-to-gcs-object", "upsert-prompt"})
}
