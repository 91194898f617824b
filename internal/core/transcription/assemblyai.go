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

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// Transcriber turns an audio stream into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// AssemblyAITranscriber uploads the audio to AssemblyAI and waits for the
// transcript.
type AssemblyAITranscriber struct {
	client *aai.Client
}

// NewAssemblyAITranscriber returns a transcriber authenticated with apiKey.
func NewAssemblyAITranscriber(apiKey string) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{client: aai.NewClient(apiKey)}
}

func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("assemblyai transcription: %s", aai.ToString(transcript.Error))
	}
	text := aai.ToString(transcript.Text)
	if text == "" {
		return "", errors.New("assemblyai returned an empty transcript")
	}
	return text, nil
}
