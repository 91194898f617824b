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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// BitRate is the bit rate of the mp3 stream ElevenLabs returns by default
// (mp3_44100_128), used to derive the audio duration from its size.
const BitRate = 128_000

// VoiceSampleExtensions are the files picked up for voice cloning.
var VoiceSampleExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac"}

// Options configures a Service.
type Options struct {
	VoiceID    string
	ModelID    string
	DefaultKey int
	OutputDir  string
	VoicesDir  string
}

// Service synthesizes speech and clones voices. It keeps no per-request
// state and is safe for concurrent use.
type Service struct {
	keys      KeyRing
	newClient ClientFactory
	opts      Options
}

// NewService builds the service. Every call creates its client from
// newClient with the key the request selects.
func NewService(keys KeyRing, newClient ClientFactory, opts Options) *Service {
	if opts.DefaultKey == 0 {
		opts.DefaultKey = 1
	}
	return &Service{keys: keys, newClient: newClient, opts: opts}
}

// Available reports whether speech can be generated without choosing a key
// or a voice explicitly.
func (s *Service) Available() bool {
	_, err := s.keys.Key(s.opts.DefaultKey)
	return err == nil && s.opts.VoiceID != ""
}

// DurationMs returns the play time of an mp3 stream of size bytes at BitRate.
func DurationMs(size int) int64 {
	return int64(size) * 8 * 1000 / BitRate
}

// resolve joins a caller supplied path to root, refusing absolute paths and
// paths leaving root.
func resolve(root, path string) (string, error) {
	if path == "" || !filepath.IsLocal(path) {
		return "", model.NewValidationError(fmt.Sprintf("path %q must be relative and stay below %s", path, root))
	}
	return filepath.Join(root, path), nil
}

// Generate writes the speech for req.Text to req.AudioPath below the output
// directory. Failures are reported in the response.
func (s *Service) Generate(ctx context.Context, req *model.AudioGenerateRequest) *model.AudioGenerateResponse {
	file, size, err := s.generate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "audio generation failed", "audio_path", req.AudioPath, "kind", model.KindOf(err), "error", err)
		return &model.AudioGenerateResponse{
			AudioPath: req.AudioPath,
			Text:      req.Text,
			Error:     model.ErrorString(err),
		}
	}
	return &model.AudioGenerateResponse{
		AudioPath:  file,
		DurationMs: DurationMs(size),
		Text:       req.Text,
		Success:    true,
	}
}

func (s *Service) generate(ctx context.Context, req *model.AudioGenerateRequest) (string, int, error) {
	keyNumber := req.APIKeyNumber
	if keyNumber == 0 {
		keyNumber = s.opts.DefaultKey
	}
	key, err := s.keys.Key(keyNumber)
	if err != nil {
		return "", 0, err
	}
	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = s.opts.VoiceID
	}
	if voiceID == "" {
		return "", 0, model.NewConfigurationError("no voice_id given and ELEVENLABS_VOICE_ID is not set")
	}
	file, err := resolve(s.opts.OutputDir, req.AudioPath)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", 0, err
	}

	slog.InfoContext(ctx, "generating audio", "chars", len(req.Text), "voice_id", voiceID, "key_number", keyNumber)
	data, err := s.newClient(ctx, key).TextToSpeech(voiceID, s.opts.ModelID, req.Text)
	if err != nil {
		return "", 0, model.NewUpstreamCallError("text to speech failed", err)
	}
	if !filetype.IsAudio(data) {
		return "", 0, model.NewUpstreamCallError("text to speech failed",
			fmt.Errorf("response of %d bytes is not audio", len(data)))
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", 0, err
	}
	slog.InfoContext(ctx, "audio generated", "file", file, "bytes", len(data))
	return file, len(data), nil
}

// GenerateList runs Generate for every request in order.
func (s *Service) GenerateList(ctx context.Context, reqs []*model.AudioGenerateRequest) []*model.AudioGenerateResponse {
	out := make([]*model.AudioGenerateResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, s.Generate(ctx, req))
	}
	return out
}

// sampleFiles lists the voice samples of dir, sorted by name.
func sampleFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, model.NewValidationError(fmt.Sprintf("Directory %s does not exist", dir))
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, model.NewValidationError(fmt.Sprintf("%s is not a directory", dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && slices.Contains(VoiceSampleExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, model.NewValidationError(fmt.Sprintf("No audio files found in %s. Supported formats: %s",
			dir, strings.Join(VoiceSampleExtensions, ", ")))
	}
	return files, nil
}

// failure returns the message reported to the caller for err.
func failure(prefix string, err error) *string {
	msg := prefix + ": " + err.Error()
	return &msg
}

// CloneVoice creates an instant voice clone from the samples found in
// req.VoiceDirPath below the voices directory. Name and description default
// to values derived from the directory. Failures are reported in the
// response.
func (s *Service) CloneVoice(ctx context.Context, req *model.VoiceCloneRequest) *model.VoiceCloneResponse {
	out, err := s.cloneVoice(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "voice cloning failed", "voice_dir_path", req.VoiceDirPath, "error", err)
		return &model.VoiceCloneResponse{
			APIKeyNumber: req.APIKeyNumber,
			Error:        failure("Voice cloning failed", err),
		}
	}
	return out
}

func (s *Service) cloneVoice(ctx context.Context, req *model.VoiceCloneRequest) (*model.VoiceCloneResponse, error) {
	key, err := s.keys.Key(req.APIKeyNumber)
	if err != nil {
		return nil, err
	}
	dir, err := resolve(s.opts.VoicesDir, req.VoiceDirPath)
	if err != nil {
		return nil, err
	}
	files, err := sampleFiles(dir)
	if err != nil {
		return nil, err
	}

	name := model.StringValue(req.VoiceName)
	if name == "" {
		name = "Cloned_Voice_" + filepath.Base(dir)
	}
	description := model.StringValue(req.VoiceDescription)
	if description == "" {
		description = "Voice cloned from " + req.VoiceDirPath
	}

	slog.InfoContext(ctx, "cloning voice", "samples", len(files), "dir", dir, "key_number", req.APIKeyNumber)
	id, err := s.newClient(ctx, key).CloneVoice(name, description, files)
	if err != nil {
		return nil, model.NewUpstreamCallError("add voice failed", err)
	}
	slog.InfoContext(ctx, "voice cloned", "voice_id", id)
	return &model.VoiceCloneResponse{
		VoiceID:        id,
		VoiceName:      name,
		Description:    description,
		APIKeyNumber:   req.APIKeyNumber,
		AudioFilesUsed: len(files),
		Success:        true,
	}, nil
}

// VoiceDetails fetches a voice with the selected key. Failures are reported
// in the response.
func (s *Service) VoiceDetails(ctx context.Context, req *model.VoiceDetailsRequest) *model.VoiceDetailsResponse {
	voice, err := s.voice(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get voice details", "voice_id", req.VoiceID, "error", err)
		return &model.VoiceDetailsResponse{
			VoiceID: req.VoiceID,
			Labels:  map[string]string{},
			Error:   failure("Failed to get voice details", err),
		}
	}

	out := &model.VoiceDetailsResponse{
		VoiceID:     voice.ID,
		Name:        voice.Name,
		Description: voice.Description,
		Category:    voice.Category,
		Labels:      voice.Labels,
		Success:     true,
	}
	if out.Labels == nil {
		out.Labels = map[string]string{}
	}
	if voice.PreviewURL != "" {
		out.PreviewURL = &voice.PreviewURL
	}
	return out
}

func (s *Service) voice(ctx context.Context, req *model.VoiceDetailsRequest) (Voice, error) {
	key, err := s.keys.Key(req.APIKeyNumber)
	if err != nil {
		return Voice{}, err
	}
	voice, err := s.newClient(ctx, key).Voice(req.VoiceID)
	if err != nil {
		return Voice{}, model.NewUpstreamCallError("get voice failed", err)
	}
	return voice, nil
}

// KeysDetails reports the quota of every valid configured key. A key whose
// account cannot be read is listed with status "error".
func (s *Service) KeysDetails(ctx context.Context) *model.AudioKeysReport {
	report := &model.AudioKeysReport{Keys: []model.AudioKeyDetails{}}
	for _, n := range s.keys.Numbers() {
		key, _ := s.keys.Key(n)
		details := model.AudioKeyDetails{KeyNumber: n, Key: cloud.MaskKey(key)}

		sub, err := s.newClient(ctx, key).Subscription()
		if err != nil {
			slog.WarnContext(ctx, "failed to read ElevenLabs subscription", "key_number", n, "error", err)
			details.Status = "error"
			details.Error = err.Error()
		} else {
			details.Tier = sub.Tier
			details.Status = sub.Status
			details.CharacterCount = sub.CharacterCount
			details.CharacterLimit = sub.CharacterLimit
			details.CharactersRemaining = sub.CharacterLimit - sub.CharacterCount
			details.NextCharacterCountResetUnix = sub.NextResetUnix
		}
		report.Keys = append(report.Keys, details)
	}
	report.TotalKeys = len(report.Keys)
	return report
}
