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
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest lists the prompt templates and the file holding each localized
// variant, e.g.
//
//	prompts:
//	  - name: title_prompt
//	    type: title
//	    files:
//	      en: title_prompt.txt
//	      fr: title_prompt.fr.txt
type Manifest struct {
	Prompts []ManifestEntry `yaml:"prompts"`
}

// ManifestEntry lists the files of one template, one per language.
type ManifestEntry struct {
	Name  string            `yaml:"name"`
	Type  string            `yaml:"type"`
	Files map[string]string `yaml:"files"` // language -> file name
}

// Languages returns the entry's languages in a stable order.
func (e ManifestEntry) Languages() []string {
	langs := make([]string, 0, len(e.Files))
	for lang := range e.Files {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse prompt manifest: %w", err)
	}
	for i, e := range m.Prompts {
		if e.Name == "" {
			return nil, fmt.Errorf("prompt manifest entry %d has no name", i)
		}
		if len(e.Files) == 0 {
			return nil, fmt.Errorf("prompt manifest entry %q has no files", e.Name)
		}
	}
	return &m, nil
}

// LoadManifest reads and decodes the manifest file.
func LoadManifest(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt manifest: %w", err)
	}
	return ParseManifest(data)
}

// Resolve maps a source object name (a bare file name or a path ending in
// one) to the key and type it populates.
func (m *Manifest) Resolve(objectName string) (Key, string, bool) {
	base := path.Base(objectName)
	for _, e := range m.Prompts {
		for lang, file := range e.Files {
			if file == base {
				return Key{Name: e.Name, Language: lang}, e.Type, true
			}
		}
	}
	return Key{}, "", false
}
