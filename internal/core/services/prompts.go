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

package services

import (
	"context"
	"errors"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
)

// DefaultPromptPageSize is the page size of List when none is given.
const DefaultPromptPageSize = 100

// PromptService lists the stored templates and reloads them from their
// source files.
type PromptService struct {
	Store    prompts.Store
	Migrator *prompts.Migrator
}

// List returns one page of templates. A negative skip starts at the first
// template and a non positive limit uses DefaultPromptPageSize.
func (s *PromptService) List(ctx context.Context, skip, limit int64) ([]*prompts.Prompt, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPromptPageSize
	}
	return s.Store.List(ctx, skip, limit)
}

// Migrate reloads every template of the manifest into the store.
func (s *PromptService) Migrate(ctx context.Context) (*prompts.MigrationReport, error) {
	if s.Migrator == nil {
		return nil, errors.New("prompt migration is not configured")
	}
	return s.Migrator.Migrate(ctx)
}
