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

// Package transcription turns inspiration video URLs into text. Audio is
// downloaded with yt-dlp, transcribed by AssemblyAI and both are cached per
// project so a video is only processed once.
package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// Service transcribes inspiration videos. It is safe for concurrent use.
type Service struct {
	cache       Cache
	downloader  Downloader
	transcriber Transcriber
}

// NewService builds the service. A nil transcriber leaves only cached
// transcripts available.
func NewService(cache Cache, downloader Downloader, transcriber Transcriber) *Service {
	return &Service{cache: cache, downloader: downloader, transcriber: transcriber}
}

// Available reports whether new videos can be transcribed.
func (s *Service) Available() bool {
	return s.transcriber != nil
}

func (s *Service) readCached(ctx context.Context, name string) (string, bool) {
	r, err := s.cache.Open(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.WarnContext(ctx, "transcript cache read failed", "entry", name, "error", err)
		}
		return "", false
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		slog.WarnContext(ctx, "transcript cache read failed", "entry", name, "error", err)
		return "", false
	}
	return string(data), true
}

// TranscribeVideo returns the transcript of one video, from the cache when
// the project already transcribed it.
func (s *Service) TranscribeVideo(ctx context.Context, url, project string) (string, error) {
	ref, ok := ExtractVideoID(url)
	if !ok {
		return "", fmt.Errorf("failed to extract video id from %s", url)
	}

	transcriptName := TranscriptPath(project, ref.ID)
	if text, ok := s.readCached(ctx, transcriptName); ok {
		slog.InfoContext(ctx, "transcript found in cache", "video_id", ref.ID, "entry", transcriptName)
		return text, nil
	}
	if !s.Available() {
		return "", model.NewConfigurationError("transcription requires an AssemblyAI API key")
	}

	audio, err := s.openAudio(ctx, ref, project)
	if err != nil {
		return "", err
	}
	defer audio.Close()

	slog.InfoContext(ctx, "transcribing audio", "video_id", ref.ID)
	text, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", model.NewUpstreamCallError("transcription failed", err)
	}

	if err := s.cache.Save(ctx, transcriptName, strings.NewReader(text)); err != nil {
		slog.WarnContext(ctx, "failed to cache transcript", "entry", transcriptName, "error", err)
	}
	slog.InfoContext(ctx, "transcription completed", "video_id", ref.ID, "chars", len(text))
	return text, nil
}

// openAudio returns the cached audio track, downloading it first if needed.
func (s *Service) openAudio(ctx context.Context, ref VideoRef, project string) (io.ReadCloser, error) {
	audioName := AudioPath(project, ref.ID)
	r, err := s.cache.Open(ctx, audioName)
	if err == nil {
		slog.InfoContext(ctx, "audio found in cache", "video_id", ref.ID, "entry", audioName)
		return r, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "inspiration-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	slog.InfoContext(ctx, "downloading audio", "video_id", ref.ID, "platform", ref.Platform)
	file, err := s.downloader.Download(ctx, ref, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", ref.URL, err)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	err = s.cache.Save(ctx, audioName, f)
	f.Close()
	if err != nil {
		return nil, err
	}
	return s.cache.Open(ctx, audioName)
}

// TranscribeVideos transcribes every URL in order and joins the successful
// transcripts with model.InspirationSeparator. Failed videos are logged and
// skipped, so the result may be empty but the call never fails.
func (s *Service) TranscribeVideos(ctx context.Context, urls []string, project string) string {
	var transcripts []string
	for _, url := range urls {
		text, err := s.TranscribeVideo(ctx, url, project)
		if err != nil {
			slog.ErrorContext(ctx, "skipping inspiration video", "url", url, "error", err)
			continue
		}
		if text != "" {
			transcripts = append(transcripts, text)
		}
	}
	return strings.Join(transcripts, model.InspirationSeparator)
}
