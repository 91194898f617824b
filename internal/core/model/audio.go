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

package model

// AudioGenerateRequest is one item of POST /audio/generate and
// /audio/generate-list. AudioPath is relative to the configured audio
// output directory.
type AudioGenerateRequest struct {
	Text         string `json:"text" binding:"required,min=1"`
	AudioPath    string `json:"audio_path" binding:"required"`
	VoiceID      string `json:"voice_id,omitempty"`
	APIKeyNumber int    `json:"api_key_number,omitempty" binding:"omitempty,min=1,max=5"`
}

// AudioGenerateResponse reports the outcome of one synthesis. Failures are
// reported with Success false rather than an HTTP error.
type AudioGenerateResponse struct {
	AudioPath  string  `json:"audio_path"`
	DurationMs int64   `json:"duration_ms"`
	Text       string  `json:"text"`
	Success    bool    `json:"success"`
	Error      *string `json:"error"`
}

type VoiceCloneRequest struct {
	VoiceDirPath     string  `json:"voice_dir_path" binding:"required"`
	APIKeyNumber     int     `json:"api_key_number" binding:"required,min=1,max=5"`
	VoiceName        *string `json:"voice_name,omitempty"`
	VoiceDescription *string `json:"voice_description,omitempty"`
}

type VoiceCloneResponse struct {
	VoiceID        string  `json:"voice_id"`
	VoiceName      string  `json:"voice_name"`
	Description    string  `json:"description"`
	APIKeyNumber   int     `json:"api_key_number"`
	AudioFilesUsed int     `json:"audio_files_used"`
	Success        bool    `json:"success"`
	Error          *string `json:"error"`
}

type VoiceDetailsRequest struct {
	VoiceID      string `json:"voice_id" binding:"required"`
	APIKeyNumber int    `json:"api_key_number" binding:"required,min=1,max=5"`
}

type VoiceDetailsResponse struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Labels      map[string]string `json:"labels"`
	PreviewURL  *string           `json:"preview_url"`
	Success     bool              `json:"success"`
	Error       *string           `json:"error"`
}

// AudioKeyDetails describes the account behind one configured key. The key
// itself is masked.
type AudioKeyDetails struct {
	KeyNumber                   int    `json:"key_number"`
	Key                         string `json:"key"`
	Tier                        string `json:"tier,omitempty"`
	Status                      string `json:"status"`
	CharacterCount              int    `json:"character_count"`
	CharacterLimit              int    `json:"character_limit"`
	CharactersRemaining         int    `json:"characters_remaining"`
	NextCharacterCountResetUnix int64  `json:"next_character_count_reset_unix,omitempty"`
	Error                       string `json:"error,omitempty"`
}

type AudioKeysReport struct {
	Keys      []AudioKeyDetails `json:"keys"`
	TotalKeys int               `json:"total_keys"`
}

// ErrorString returns a pointer to err's message, or nil without error.
func ErrorString(err error) *string {
	if err == nil {
		return nil
	}
	msg := err.Error()
	return &msg
}
