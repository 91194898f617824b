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

package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"path"
)

// MigrationReport summarizes a Migrate run.
type MigrationReport struct {
	Upserted []string `json:"upserted"` // keys written, as name/language
	Skipped  []string `json:"skipped"`  // files listed in the manifest but absent from the source
}

// Migrator copies every template referenced by a Manifest from a Source into
// a Store. Existing records are updated, new ones inserted.
type Migrator struct {
	Manifest *Manifest
	Source   Source
	Store    Store
}

// NewMigrator returns a Migrator copying the manifest files from source into store.
func NewMigrator(manifest *Manifest, source Source, store Store) *Migrator {
	return &Migrator{Manifest: manifest, Source: source, Store: store}
}

// Migrate stops at the first read or write failure; records written before
// it stay written.
func (m *Migrator) Migrate(ctx context.Context) (*MigrationReport, error) {
	available, err := m.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(available))
	for _, name := range available {
		present[name] = true
	}

	report := &MigrationReport{Upserted: []string{}, Skipped: []string{}}
	for _, entry := range m.Manifest.Prompts {
		for _, lang := range entry.Languages() {
			file := entry.Files[lang]
			key := Key{Name: entry.Name, Language: lang}
			if !present[file] {
				slog.WarnContext(ctx, "prompt file missing, skipping", "file", file, "prompt", key.String())
				report.Skipped = append(report.Skipped, file)
				continue
			}
			if err := m.migrateFile(ctx, key, entry.Type, file); err != nil {
				return report, err
			}
			report.Upserted = append(report.Upserted, key.String())
		}
	}
	slog.InfoContext(ctx, "prompt migration finished", "upserted", len(report.Upserted), "skipped", len(report.Skipped))
	return report, nil
}

// MigrateObject migrates the single source file objectName, resolving its
// key through the manifest. Any directory part of objectName is dropped;
// the Source applies its own prefix.
func (m *Migrator) MigrateObject(ctx context.Context, objectName string) (*Prompt, error) {
	key, kind, ok := m.Manifest.Resolve(objectName)
	if !ok {
		return nil, fmt.Errorf("object %q is not listed in the prompt manifest", objectName)
	}
	content, err := m.Source.Read(ctx, path.Base(objectName))
	if err != nil {
		return nil, err
	}
	prompt := NewPrompt(key, content, kind)
	if err := m.Store.Upsert(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (m *Migrator) migrateFile(ctx context.Context, key Key, kind, file string) error {
	content, err := m.Source.Read(ctx, file)
	if err != nil {
		return err
	}
	if err := m.Store.Upsert(ctx, NewPrompt(key, content, kind)); err != nil {
		return err
	}
	slog.DebugContext(ctx, "prompt upserted", "prompt", key.String(), "file", file)
	return nil
}
