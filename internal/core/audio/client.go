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

// Package audio turns text into speech and clones voices with ElevenLabs.
// Up to five ElevenLabs accounts can be configured; a request selects one
// by its key number, and the account quotas can be listed with KeysDetails.
package audio

import "context"

// Voice is the part of an ElevenLabs voice the service reports.
type Voice struct {
	ID          string
	Name        string
	Description string
	Category    string
	Labels      map[string]string
	PreviewURL  string
}

// Subscription is the character quota of an ElevenLabs account.
type Subscription struct {
	Tier           string
	Status         string
	CharacterCount int
	CharacterLimit int
	NextResetUnix  int64
}

// Client is the subset of the ElevenLabs API the service calls.
type Client interface {
	TextToSpeech(voiceID, modelID, text string) ([]byte, error)
	CloneVoice(name, description string, files []string) (string, error)
	Voice(voiceID string) (Voice, error)
	Subscription() (Subscription, error)
}

// ClientFactory returns a Client authenticated with apiKey whose calls are
// bound to ctx.
type ClientFactory func(ctx context.Context, apiKey string) Client
