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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/h2non/filetype"
)

// ErrUnsupportedPlatform is returned for videos that cannot be downloaded.
var ErrUnsupportedPlatform = errors.New("video download not supported for this platform")

// Downloader fetches the audio track of a video into dir and returns the
// local file path.
type Downloader interface {
	Download(ctx context.Context, ref VideoRef, dir string) (string, error)
}

// YtDlpDownloader runs the yt-dlp binary to extract an mp3 track.
type YtDlpDownloader struct {
	Binary string
}

// NewYtDlpDownloader returns a downloader running binary, "yt-dlp" when empty.
func NewYtDlpDownloader(binary string) *YtDlpDownloader {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YtDlpDownloader{Binary: binary}
}

// Download extracts the mp3 track of a YouTube video into dir.
func (d *YtDlpDownloader) Download(ctx context.Context, ref VideoRef, dir string) (string, error) {
	if ref.Platform != PlatformYouTube {
		return "", fmt.Errorf("%s: %w", ref.Platform, ErrUnsupportedPlatform)
	}

	output := filepath.Join(dir, ref.ID+".%(ext)s")
	cmd := exec.CommandContext(ctx, d.Binary,
		"--extract-audio",
		"--audio-format", "mp3",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-o", output,
		ref.URL,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		slog.ErrorContext(ctx, "yt-dlp failed", "video_id", ref.ID, "stderr", stderr.String())
		return "", fmt.Errorf("error running yt-dlp: %w", err)
	}

	file := filepath.Join(dir, ref.ID+".mp3")
	if err := CheckMediaFile(file); err != nil {
		return "", err
	}
	return file, nil
}

// CheckMediaFile verifies from its header that file holds audio or video.
func CheckMediaFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("downloaded file missing: %w", err)
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	if !filetype.IsAudio(head[:n]) && !filetype.IsVideo(head[:n]) {
		kind, _ := filetype.Match(head[:n])
		return fmt.Errorf("downloaded file %s is not audio (detected %q)", filepath.Base(file), kind.MIME.Value)
	}
	return nil
}
