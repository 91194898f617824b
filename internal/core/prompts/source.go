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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// Source is where prompt template files are read from during migration.
type Source interface {
	// List returns the file names available in the source.
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (string, error)
}

// DirSource reads template files from a local directory.
type DirSource struct {
	Dir string
}

func (s DirSource) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt directory %s: %w", s.Dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s DirSource) Read(_ context.Context, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", name, err)
	}
	return string(data), nil
}

// GCSSource reads template files from a bucket, optionally below a prefix.
type GCSSource struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (s GCSSource) objectName(name string) string {
	if s.Prefix == "" {
		return name
	}
	return strings.TrimSuffix(s.Prefix, "/") + "/" + name
}

func (s GCSSource) List(ctx context.Context) ([]string, error) {
	query := &storage.Query{}
	if s.Prefix != "" {
		query.Prefix = strings.TrimSuffix(s.Prefix, "/") + "/"
	}
	it := s.Client.Bucket(s.Bucket).Objects(ctx, query)
	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gs://%s/%s: %w", s.Bucket, s.Prefix, err)
		}
		names = append(names, strings.TrimPrefix(attrs.Name, query.Prefix))
	}
	return names, nil
}

func (s GCSSource) Read(ctx context.Context, name string) (string, error) {
	object := s.objectName(name)
	reader, err := s.Client.Bucket(s.Bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to open gs://%s/%s: %w", s.Bucket, object, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read gs://%s/%s: %w", s.Bucket, object, err)
	}
	return string(data), nil
}
