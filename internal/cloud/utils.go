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

package cloud

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ConfigFileBaseName  = ".env" // base name of the TOML files, e.g. ".env.toml"
	ConfigFileExtension = ".toml"
	ConfigSeparator     = "."
	EnvConfigFilePrefix = "GCP_CONFIG_PREFIX" // directory holding the TOML files
	EnvConfigRuntime    = "GCP_RUNTIME"       // runtime overlay: "local", "test", "prod"...
	DefaultRuntime      = "test"
)

// MaxElevenLabsKeys is the highest ELEVENLABS_API_KEY<n> read from the environment.
const MaxElevenLabsKeys = 5

// Environment variables that override the TOML values.
const (
	EnvDeepSeekAPIKey   = "DEEPSEEK_API_KEY"
	EnvOpenAIAPIBase    = "OPENAI_API_BASE"
	EnvOpenAIModel      = "OPENAI_MODEL"
	EnvAssemblyAIAPIKey = "ASSEMBLYAI_API_KEY"
	EnvElevenLabsKey    = "ELEVENLABS_API_KEY" // followed by the key number, 1 to MaxElevenLabsKeys
	EnvElevenLabsVoice  = "ELEVENLABS_VOICE_ID"
	EnvMongoDBURL       = "MONGODB_URL"
	EnvDBName           = "DB_NAME"
	EnvAppPort          = "APP_PORT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvEnvironment      = "ENVIRONMENT"
)

func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// ConfigFiles returns the base and runtime TOML file names selected by the
// GCP_CONFIG_PREFIX and GCP_RUNTIME environment variables.
func ConfigFiles() (base string, runtime string) {
	prefix := os.Getenv(EnvConfigFilePrefix)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix = prefix + string(os.PathSeparator)
	}
	env := os.Getenv(EnvConfigRuntime)
	if env == "" {
		env = DefaultRuntime
	}
	base = prefix + ConfigFileBaseName + ConfigFileExtension
	runtime = prefix + ConfigFileBaseName + ConfigSeparator + env + ConfigFileExtension
	return base, runtime
}

// LoadConfig decodes the base TOML file and then the runtime overlay into
// baseConfig. Either file may be absent.
func LoadConfig(baseConfig any) error {
	base, runtime := ConfigFiles()
	for _, file := range []string{base, runtime} {
		if !fileExists(file) {
			slog.Debug("configuration file not found", "file", file)
			continue
		}
		if _, err := toml.DecodeFile(file, baseConfig); err != nil {
			return fmt.Errorf("failed to decode configuration file %s: %w", file, err)
		}
		slog.Debug("configuration file loaded", "file", file)
	}
	return nil
}

// LoadDotEnv exports the variables of the given dotenv files into the
// process environment without overwriting variables already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if !fileExists(file) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides config with the values of the secret/deployment
// environment variables that are set.
func ApplyEnv(config *Config) error {
	setString := func(name string, target *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*target = v
		}
	}
	setString(EnvDeepSeekAPIKey, &config.LLM.APIKey)
	setString(EnvOpenAIAPIBase, &config.LLM.APIBase)
	setString(EnvOpenAIModel, &config.LLM.Model)
	setString(EnvAssemblyAIAPIKey, &config.Transcription.APIKey)
	setString(EnvElevenLabsVoice, &config.Audio.VoiceID)
	for n := 1; n <= MaxElevenLabsKeys; n++ {
		if v, ok := os.LookupEnv(EnvElevenLabsKey + strconv.Itoa(n)); ok && v != "" {
			for len(config.Audio.APIKeys) < n {
				config.Audio.APIKeys = append(config.Audio.APIKeys, "")
			}
			config.Audio.APIKeys[n-1] = v
		}
	}
	setString(EnvMongoDBURL, &config.PromptStore.MongoDBURL)
	setString(EnvDBName, &config.PromptStore.Database)
	setString(EnvLogLevel, &config.Application.LogLevel)
	setString(EnvEnvironment, &config.Application.Environment)

	if v, ok := os.LookupEnv(EnvAppPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAppPort, v, err)
		}
		config.Application.Port = port
	}
	return nil
}

// MaskKey hides all but the first and last four characters of a secret.
func MaskKey(key string) string {
	if key == "" {
		return "<not set>"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
