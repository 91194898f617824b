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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/agents"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/audio"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/services"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/transcription"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/workflow"
	"github.com/jaycherian/gcp-go-script-generation/internal/telemetry"
)

// StateManager owns everything built at startup. It is created once by
// InitState and handed to the commands; nothing in it changes afterwards.
type StateManager struct {
	config        *cloud.Config
	cloud         *cloud.ServiceClients
	store         prompts.Store
	migrator      *prompts.Migrator
	scriptService *services.ScriptService
	promptService *services.PromptService
	audioService  *audio.Service

	closeLog          func() error
	shutdownTelemetry func(context.Context) error
}

// SetupOS selects the configuration directory and runtime overlay. Empty
// values keep what the environment already says.
func SetupOS(configDir, runtime string) error {
	if configDir != "" {
		if err := os.Setenv(cloud.EnvConfigFilePrefix, configDir); err != nil {
			return err
		}
	} else if _, ok := os.LookupEnv(cloud.EnvConfigFilePrefix); !ok {
		if err := os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if runtime != "" {
		return os.Setenv(cloud.EnvConfigRuntime, runtime)
	}
	if _, ok := os.LookupEnv(cloud.EnvConfigRuntime); !ok {
		return os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return nil
}

// GetConfig layers the TOML files, the .env file and the environment.
func GetConfig() (*cloud.Config, error) {
	if err := cloud.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	config := cloud.NewConfig()
	if err := cloud.LoadConfig(config); err != nil {
		return nil, err
	}
	if err := cloud.ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// InitState loads the configuration, sets up telemetry and connects every
// client. The returned state must be closed.
func InitState(ctx context.Context) (*StateManager, error) {
	config, err := GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	state := &StateManager{config: config}
	if state.closeLog, err = telemetry.SetupLogging(config.Application.LogLevel, config.Application.LogFile); err != nil {
		return nil, err
	}
	slog.Info("logging initialized", "environment", config.Application.Environment, "level", config.Application.LogLevel)

	if state.shutdownTelemetry, err = telemetry.SetupOpenTelemetry(ctx, config); err != nil {
		state.Close(ctx)
		return nil, fmt.Errorf("failed to setup OpenTelemetry: %w", err)
	}

	if state.cloud, err = cloud.NewServiceClients(ctx, config); err != nil {
		state.Close(ctx)
		return nil, err
	}

	if state.store, err = newPromptStore(ctx, config, state.cloud); err != nil {
		state.Close(ctx)
		return nil, err
	}
	state.migrator = newMigrator(config, state.cloud, state.store)

	generator := agents.NewGenerator(state.store, state.cloud.LLM)
	transcriber := newTranscriptionService(config, state.cloud)
	state.scriptService = &services.ScriptService{
		ScriptWorkflow:     workflow.NewScriptGenerationWorkflow(config, generator, transcriber),
		ContextualWorkflow: workflow.NewContextualDescriptionWorkflow(generator, transcriber),
		LLM:                generator,
		Transcription:      transcriber,
		ModelName:          generator.ModelName(),
		Defaults:           config.Generation,
	}
	state.promptService = &services.PromptService{Store: state.store, Migrator: state.migrator}
	state.audioService = newAudioService(config)

	slog.Info("state initialized",
		"llm_available", generator.Available(),
		"transcription_available", transcriber.Available(),
		"prompt_migration", state.migrator != nil,
		"audio_available", state.audioService.Available())
	return state, nil
}

func newPromptStore(ctx context.Context, config *cloud.Config, clients *cloud.ServiceClients) (prompts.Store, error) {
	switch config.PromptStore.Driver {
	case cloud.StoreDriverMongo:
		store := prompts.NewMongoStore(clients.MongoClient, config.PromptStore.Database, config.PromptStore.Collection)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case cloud.StoreDriverMemory:
		slog.Warn("using in-memory prompt store, run a migration to load the templates")
		return prompts.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown prompt store driver %q", config.PromptStore.Driver)
}

// newMigrator returns nil when the manifest cannot be loaded; migration is
// then reported as not configured.
func newMigrator(config *cloud.Config, clients *cloud.ServiceClients, store prompts.Store) *prompts.Migrator {
	manifest, err := prompts.LoadManifest(config.PromptStore.Manifest)
	if err != nil {
		slog.Warn("prompt migration disabled", "manifest", config.PromptStore.Manifest, "error", err)
		return nil
	}

	var source prompts.Source = prompts.DirSource{Dir: config.PromptStore.PromptsDir}
	if config.PromptStore.PromptsBucket != "" {
		source = prompts.GCSSource{
			Client: clients.StorageClient,
			Bucket: config.PromptStore.PromptsBucket,
			Prefix: config.PromptStore.PromptsPrefix,
		}
	}
	return prompts.NewMigrator(manifest, source, store)
}

func newTranscriptionService(config *cloud.Config, clients *cloud.ServiceClients) *transcription.Service {
	var cache transcription.Cache = transcription.FSCache{Root: config.Transcription.VideosDir}
	if config.Transcription.Cache == cloud.CacheGCS {
		cache = transcription.GCSCache{Client: clients.StorageClient, Bucket: config.Transcription.CacheBucket}
	}

	var transcriber transcription.Transcriber
	if config.Transcription.APIKey != "" {
		transcriber = transcription.NewAssemblyAITranscriber(config.Transcription.APIKey)
	} else {
		slog.Warn("ASSEMBLYAI_API_KEY is not set, only cached transcripts are available")
	}
	return transcription.NewService(cache, transcription.NewYtDlpDownloader(config.Transcription.YtDlpPath), transcriber)
}

func newAudioService(config *cloud.Config) *audio.Service {
	factory := audio.NewElevenLabsFactory(time.Duration(config.Audio.TimeoutInSeconds) * time.Second)
	svc := audio.NewService(audio.KeyRing(config.Audio.APIKeys), factory, audio.Options{
		VoiceID:    config.Audio.VoiceID,
		ModelID:    config.Audio.ModelID,
		DefaultKey: config.Audio.DefaultKey,
		OutputDir:  config.Audio.OutputDir,
		VoicesDir:  config.Audio.VoicesDir,
	})
	if !svc.Available() {
		slog.Warn("ElevenLabs default key or voice is not configured",
			"default_key", config.Audio.DefaultKey)
	}
	return svc
}

// StartListeners binds the prompt sync workflow to its subscription and
// starts receiving. Listeners without a workflow are not started.
func (s *StateManager) StartListeners(ctx context.Context) {
	for key, listener := range s.cloud.PubSubListeners {
		if key != cloud.PromptTopic {
			slog.Warn("no workflow for subscription, not listening", "subscription", key)
			continue
		}
		if s.migrator == nil || s.config.PromptStore.PromptsBucket == "" {
			slog.Warn("prompt sync needs a manifest and prompts_bucket, not listening", "subscription", key)
			continue
		}
		listener.SetCommand(workflow.NewPromptSyncWorkflow(s.migrator, s.config.PromptStore.PromptsBucket))
		listener.Listen(ctx)
	}
}

// Close flushes telemetry and releases the clients.
func (s *StateManager) Close(ctx context.Context) {
	var err error
	if s.cloud != nil {
		err = errors.Join(err, s.cloud.Close(ctx))
	}
	if s.shutdownTelemetry != nil {
		err = errors.Join(err, s.shutdownTelemetry(ctx))
	}
	if err != nil {
		slog.Error("failed to release resources", "error", err)
	}
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}
