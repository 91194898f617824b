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

// Package cloud defines the service configuration and builds the clients for
// every external collaborator: the LLM providers, MongoDB, Cloud Storage and
// Pub/Sub. ElevenLabs clients are created per request by the audio package
// since each call may use a different key.
//
// The configuration is loaded from TOML files (see LoadConfig) and then
// overridden by environment variables carrying secrets (see ApplyEnv).
package cloud

// Provider names accepted in [llm].provider.
const (
	ProviderOpenAI = "openai"
	ProviderVertex = "vertex"
)

// Store drivers accepted in [prompt_store].driver.
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Transcript cache backends accepted in [transcription].cache.
const (
	CacheFilesystem = "fs"
	CacheGCS        = "gcs"
)

// Application holds process-level settings.
type Application struct {
	Name            string   `toml:"name"`
	Version         string   `toml:"version"`
	Environment     string   `toml:"environment"`
	Port            int      `toml:"port"`
	APIPrefix       string   `toml:"api_prefix"`
	AllowedHosts    []string `toml:"allowed_hosts"` // CORS origins, "*" for any
	LogLevel        string   `toml:"log_level"`
	LogFile         string   `toml:"log_file"` // optional, logs are also written here
	GoogleProjectId string   `toml:"google_project_id"`
	GoogleLocation  string   `toml:"location"`
}

// LLM selects and configures the language model backend.
type LLM struct {
	Provider  string `toml:"provider"`
	APIKey    string `toml:"api_key"`
	APIBase   string `toml:"api_base"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per second, 0 disables limiting
}

// Transcription configures inspiration video download and transcription.
type Transcription struct {
	APIKey      string `toml:"api_key"`
	VideosDir   string `toml:"videos_dir"`
	Cache       string `toml:"cache"`
	CacheBucket string `toml:"cache_bucket"`
	YtDlpPath   string `toml:"ytdlp_path"`
}

// Audio configures ElevenLabs speech synthesis and voice cloning. APIKeys
// are numbered from 1; ELEVENLABS_API_KEY<n> overrides key n.
type Audio struct {
	APIKeys          []string `toml:"api_keys"`
	DefaultKey       int      `toml:"default_key"`
	VoiceID          string   `toml:"voice_id"`
	ModelID          string   `toml:"model_id"`
	OutputDir        string   `toml:"output_dir"` // audio_path of requests is relative to it
	VoicesDir        string   `toml:"voices_dir"` // voice_dir_path of clone requests is relative to it
	TimeoutInSeconds int      `toml:"timeout_in_seconds"`
}

// Generation holds defaults applied when a request leaves a value out.
type Generation struct {
	DefaultDuration   int `toml:"default_duration"`
	DefaultNbSections int `toml:"default_nb_sections"`
}

// PromptStore configures where templates are stored and migrated from.
type PromptStore struct {
	Driver        string `toml:"driver"`
	MongoDBURL    string `toml:"mongodb_url"`
	Database      string `toml:"database"`
	Collection    string `toml:"collection"`
	MinPoolSize   uint64 `toml:"min_pool_size"`
	MaxPoolSize   uint64 `toml:"max_pool_size"`
	PromptsDir    string `toml:"prompts_dir"`
	PromptsBucket string `toml:"prompts_bucket"` // when set, migration reads from this bucket instead of PromptsDir
	PromptsPrefix string `toml:"prompts_prefix"`
	Manifest      string `toml:"manifest"`
}

// Telemetry selects the OpenTelemetry exporters.
type Telemetry struct {
	Exporter string `toml:"exporter"` // "gcp" or "none"
}

// TopicSubscription names a Pub/Sub subscription the service listens on.
type TopicSubscription struct {
	Name             string `toml:"name"`
	DeadLetterTopic  string `toml:"dead_letter_topic"`
	TimeoutInSeconds int    `toml:"timeout_in_seconds"`
}

// PromptTopic is the TopicSubscriptions key of the prompt bucket notifications.
const PromptTopic = "PromptTopic"

// Config is the root of the TOML configuration.
type Config struct {
	Application        Application                  `toml:"application"`
	LLM                LLM                          `toml:"llm"`
	Transcription      Transcription                `toml:"transcription"`
	Audio              Audio                        `toml:"audio"`
	Generation         Generation                   `toml:"generation"`
	PromptStore        PromptStore                  `toml:"prompt_store"`
	Telemetry          Telemetry                    `toml:"telemetry"`
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"`
}

// NewConfig returns a Config populated with the built-in defaults; the
// TOML files and the environment are layered on top.
func NewConfig() *Config {
	return &Config{
		Application: Application{
			Name:         "Script Generation Service",
			Version:      "1.0.0",
			Environment:  "development",
			Port:         8000,
			APIPrefix:    "/api/v1",
			AllowedHosts: []string{"*"},
			LogLevel:     "INFO",
		},
		LLM: LLM{
			Provider: ProviderOpenAI,
			APIBase:  "https://api.deepseek.com/v1",
			Model:    "deepseek-chat",
		},
		Transcription: Transcription{
			VideosDir: "resources/videos",
			Cache:     CacheFilesystem,
			YtDlpPath: "yt-dlp",
		},
		Audio: Audio{
			DefaultKey:       1,
			ModelID:          "eleven_multilingual_v2",
			OutputDir:        "resources/audio",
			VoicesDir:        "resources/voices",
			TimeoutInSeconds: 60,
		},
		Generation: Generation{
			DefaultDuration:   30,
			DefaultNbSections: 1,
		},
		PromptStore: PromptStore{
			Driver:      StoreDriverMongo,
			MongoDBURL:  "mongodb://localhost:27017",
			Database:    "script_generation",
			Collection:  "prompts",
			MinPoolSize: 10,
			MaxPoolSize: 100,
			PromptsDir:  "prompts",
			Manifest:    "prompts/manifest.yaml",
		},
		Telemetry:          Telemetry{Exporter: "none"},
		TopicSubscriptions: make(map[string]TopicSubscription),
	}
}
