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
	"sort"
	"sync"
)

// MemoryStore keeps prompts in process memory. It backs the "memory" store
// driver and the tests.
type MemoryStore struct {
	mu      sync.RWMutex
	prompts map[string]*Prompt // keyed by stored name + "|" + language
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prompts: make(map[string]*Prompt)}
}

func memoryKey(storedName, language string) string {
	return storedName + "|" + language
}

func (m *MemoryStore) Get(_ context.Context, key Key) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.prompts[memoryKey(key.StoredName(), key.Language)]
	if !ok {
		return "", ErrPromptNotFound
	}
	return p.Content, nil
}

// List returns prompts ordered by stored name then language.
func (m *MemoryStore) List(_ context.Context, skip, limit int64) ([]*Prompt, error) {
	m.mu.RLock()
	all := make([]*Prompt, 0, len(m.prompts))
	for _, p := range m.prompts {
		cp := *p
		all = append(all, &cp)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].Language < all[j].Language
		}
		return all[i].Name < all[j].Name
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(all)) {
		return []*Prompt{}, nil
	}
	all = all[skip:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

// Upsert stores a copy of prompt, replacing any prompt with the same name and language.
func (m *MemoryStore) Upsert(_ context.Context, prompt *Prompt) error {
	cp := *prompt
	m.mu.Lock()
	m.prompts[memoryKey(cp.Name, cp.Language)] = &cp
	m.mu.Unlock()
	return nil
}

// Put stores content for key; handy for seeding.
func (m *MemoryStore) Put(key Key, content string) {
	_ = m.Upsert(context.Background(), NewPrompt(key, content, key.Name))
}
