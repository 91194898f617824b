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

// Package test provides fakes and fixtures shared by the test suites: a
// scripted language model, a scripted inspiration transcriber, a seeded
// prompt store and the test configuration.
package test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
)

// StateManager caches the test configuration across tests of a package.
type StateManager struct {
	mu     sync.Mutex
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is not nil.
func HandleErr(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// RepoRoot returns the module root directory.
func RepoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

// SetupOS points the configuration loader at configs/.env.test.toml.
func SetupOS() error {
	if err := os.Setenv(cloud.EnvConfigFilePrefix, filepath.Join(RepoRoot(), "configs")); err != nil {
		return err
	}
	return os.Setenv(cloud.EnvConfigRuntime, "test")
}

// GetConfig loads the test configuration once and returns the cached copy.
func GetConfig() *cloud.Config {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			log.Fatalf("failed to load test configuration: %v\n", err)
		}
		state.config = config
	}
	return state.config
}

// Seeded templates. Each one starts with a distinct marker so a
// ScriptedModel can tell the stages apart.
var SeedPrompts = map[prompts.Key]string{
	{Name: "title_prompt", Language: "en"}:                          "TITLE description={description} use_case={use_case} style={style}",
	{Name: "title_prompt", Language: "fr"}:                          "TITRE description={description} use_case={use_case} style={style}",
	{Name: "sections_prompt_single", Language: "en"}:                "SINGLE description={description} duration={duration} inspiration={inspiration_content}",
	{Name: "sections_prompt_multiple", Language: "en"}:              "MULTIPLE nb={nb_section} description={description} duration={duration} inspiration={inspiration_content}",
	{Name: "description_prompt", Language: "en"}:                    "DESCRIPTION title={title} script={script_text} keywords={keywords} use_case={use_case}",
	{Name: "keywords_prompt", Language: "en"}:                       "KEYWORDS title={title} script={script_text} description={description} use_case={use_case}",
	{Name: "contextual_description_life_lesson", Language: "en"}:    "LIFE_LESSON {context}",
	{Name: "contextual_description_stoicism", Language: "en"}:       "STOICISM {context}",
	{Name: "contextual_description_x_things_to_do", Language: "en"}: "X_THINGS {context}",
}

// SeededStore returns a memory store holding SeedPrompts.
func SeededStore() *prompts.MemoryStore {
	store := prompts.NewMemoryStore()
	for key, content := range SeedPrompts {
		store.Put(key, content)
	}
	return store
}

// ScriptedModel is a LanguageModel answering from canned replies. The reply
// is chosen by the longest key that prefixes the user message; Errors is
// consulted the same way first.
type ScriptedModel struct {
	Replies     map[string]string
	Errors      map[string]error
	Unavailable bool

	mu       sync.Mutex
	requests []cloud.CompletionRequest
}

func NewScriptedModel(replies map[string]string) *ScriptedModel {
	return &ScriptedModel{Replies: replies, Errors: make(map[string]error)}
}

func longestPrefix[V any](m map[string]V, s string) (V, bool) {
	var (
		best  V
		found bool
		size  = -1
	)
	for k, v := range m {
		if strings.HasPrefix(s, k) && len(k) > size {
			best, found, size = v, true, len(k)
		}
	}
	return best, found
}

func (m *ScriptedModel) Complete(_ context.Context, req cloud.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if err, ok := longestPrefix(m.Errors, req.User); ok {
		return "", err
	}
	reply, _ := longestPrefix(m.Replies, req.User)
	return reply, nil
}

func (m *ScriptedModel) Available() bool   { return !m.Unavailable }
func (m *ScriptedModel) ModelName() string { return "scripted-model" }

// Requests returns a copy of every request received so far.
func (m *ScriptedModel) Requests() []cloud.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]cloud.CompletionRequest(nil), m.requests...)
}

// Request returns the first request whose user message starts with prefix.
func (m *ScriptedModel) Request(prefix string) (cloud.CompletionRequest, bool) {
	for _, r := range m.Requests() {
		if strings.HasPrefix(r.User, prefix) {
			return r, true
		}
	}
	return cloud.CompletionRequest{}, false
}

// ScriptedInspirations stands in for the transcription service: URLs found
// in Transcripts succeed, every other URL is dropped.
type ScriptedInspirations struct {
	Transcripts map[string]string
	Unavailable bool

	mu       sync.Mutex
	calls    int
	projects []string
}

func (s *ScriptedInspirations) TranscribeVideos(_ context.Context, urls []string, project string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.projects = append(s.projects, project)

	var parts []string
	for _, u := range urls {
		if text, ok := s.Transcripts[u]; ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, model.InspirationSeparator)
}

func (s *ScriptedInspirations) Available() bool { return !s.Unavailable }

func (s *ScriptedInspirations) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *ScriptedInspirations) Projects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.projects...)
}

// GetTestPromptMessageText simulates the Pub/Sub notification Cloud Storage
// sends when a prompt file is finalized in bucket.
func GetTestPromptMessageText(bucket, name string) string {
	return fmt.Sprintf(`{
  "kind": "storage#object",
  "id": "%[1]s/%[2]s/1728615848664286",
  "selfLink": "https://www.googleapis.com/storage/v1/b/%[1]s/o/%[2]s",
  "name": "%[2]s",
  "bucket": "%[1]s",
  "generation": "1728615848664286",
  "metageneration": "1",
  "contentType": "text/plain",
  "timeCreated": "2024-10-11T03:04:08.672Z",
  "updated": "2024-10-11T03:04:08.672Z",
  "storageClass": "STANDARD",
  "size": "412",
  "md5Hash": "67c1rAU+1RYZzK5zp8iBkA==",
  "crc32c": "IYeSTw==",
  "etag": "CN658+yrhYkDEAE="
}`, bucket, name)
}
