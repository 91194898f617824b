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

package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/gosimple/slug"
)

// ErrCacheMiss is returned by Cache.Open when the entry does not exist.
var ErrCacheMiss = errors.New("cache miss")

const inspirationDir = "video-inspiration"

// TranscriptPath is the cache entry of a transcript:
// <slug(project)>/video-inspiration/<id>.txt.
func TranscriptPath(project, videoID string) string {
	return path.Join(slug.Make(project), inspirationDir, videoID+".txt")
}

// AudioPath is the cache entry of a downloaded audio track.
func AudioPath(project, videoID string) string {
	return path.Join(slug.Make(project), inspirationDir, videoID+".mp3")
}

// Cache stores downloaded audio and transcripts under slash separated
// names.
type Cache interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, r io.Reader) error
}

// FSCache keeps entries below a local directory.
type FSCache struct {
	Root string
}

func (c FSCache) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(c.Root, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	return f, err
}

// Save writes to a temporary file first so readers never see a partial entry.
func (c FSCache) Save(_ context.Context, name string, r io.Reader) error {
	target := filepath.Join(c.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), ".partial-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache entry %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// GCSCache keeps entries as objects of a Cloud Storage bucket.
type GCSCache struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (c GCSCache) object(name string) *storage.ObjectHandle {
	return c.Client.Bucket(c.Bucket).Object(path.Join(c.Prefix, name))
}

func (c GCSCache) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := c.object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", c.Bucket, name, err)
	}
	return r, nil
}

func (c GCSCache) Save(ctx context.Context, name string, r io.Reader) error {
	w := c.object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload gs://%s/%s: %w", c.Bucket, name, err)
	}
	return w.Close()
}
