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

package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/haguro/elevenlabs-go"
)

// ElevenLabsClient adapts the ElevenLabs SDK client to Client.
type ElevenLabsClient struct {
	client *elevenlabs.Client
}

// NewElevenLabsFactory returns a ClientFactory creating SDK clients whose
// requests time out after timeout.
func NewElevenLabsFactory(timeout time.Duration) ClientFactory {
	return func(ctx context.Context, apiKey string) Client {
		return &ElevenLabsClient{client: elevenlabs.NewClient(ctx, apiKey, timeout)}
	}
}

func (c *ElevenLabsClient) TextToSpeech(voiceID, modelID, text string) ([]byte, error) {
	audio, err := c.client.TextToSpeech(voiceID, elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs text to speech: %w", err)
	}
	return audio, nil
}

func (c *ElevenLabsClient) CloneVoice(name, description string, files []string) (string, error) {
	id, err := c.client.AddVoice(elevenlabs.AddEditVoiceRequest{
		Name:        name,
		Description: description,
		FilePaths:   files,
	})
	if err != nil {
		return "", fmt.Errorf("elevenlabs add voice: %w", err)
	}
	return id, nil
}

func (c *ElevenLabsClient) Voice(voiceID string) (Voice, error) {
	v, err := c.client.GetVoice(voiceID)
	if err != nil {
		return Voice{}, fmt.Errorf("elevenlabs get voice: %w", err)
	}
	return Voice{
		ID:          v.VoiceId,
		Name:        v.Name,
		Description: v.Description,
		Category:    v.Category,
		Labels:      v.Labels,
		PreviewURL:  v.PreviewUrl,
	}, nil
}

func (c *ElevenLabsClient) Subscription() (Subscription, error) {
	s, err := c.client.GetSubscription()
	if err != nil {
		return Subscription{}, fmt.Errorf("elevenlabs get subscription: %w", err)
	}
	return Subscription{
		Tier:           s.Tier,
		Status:         s.Status,
		CharacterCount: int(s.CharacterCount),
		CharacterLimit: int(s.CharacterLimit),
		NextResetUnix:  int64(s.NextCharacterCountResetUnix),
	}, nil
}
