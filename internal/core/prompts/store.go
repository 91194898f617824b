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

// Package prompts stores the localized prompt templates used by the
// generation agents and keeps them in sync with their source files.
//
// Templates are addressed by a two-field Key (base name, language). The
// store is read-only while serving requests; only the Migrator and the
// prompt sync workflow write to it.
package prompts

import (
	"context"
	"errors"
	"fmt"
)

// ErrPromptNotFound is returned by Reader.Get when no template matches a key.
var ErrPromptNotFound = errors.New("prompt not found")

// Key identifies a template: base name (e.g. "title_prompt") plus language code.
type Key struct {
	Name     string
	Language string
}

// StoredName is the name under which the template is persisted,
// "<name>_<language>".
func (k Key) StoredName() string {
	return fmt.Sprintf("%s_%s", k.Name, k.Language)
}

func (k Key) String() string {
	return k.Name + "/" + k.Language
}

// Prompt is a persisted template record.
type Prompt struct {
	ID       string `json:"id,omitempty" bson:"-"`
	Name     string `json:"name" bson:"name"`
	Language string `json:"language" bson:"language"`
	Content  string `json:"content" bson:"content"`
	Type     string `json:"type" bson:"type"`
}

// NewPrompt builds the record for key, applying the stored-name convention.
func NewPrompt(key Key, content, kind string) *Prompt {
	return &Prompt{Name: key.StoredName(), Language: key.Language, Content: content, Type: kind}
}

// Reader is the read side used while generating.
type Reader interface {
	Get(ctx context.Context, key Key) (string, error)
}

// Store is the full prompt repository.
type Store interface {
	Reader
	List(ctx context.Context, skip, limit int64) ([]*Prompt, error)
	Upsert(ctx context.Context, prompt *Prompt) error
}
