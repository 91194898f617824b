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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/genai"
)

// ServiceClients holds the long-lived clients of the process. They are
// created once at startup, shared by every request and closed on shutdown.
// Clients the configuration does not need are left nil.
type ServiceClients struct {
	StorageClient   *storage.Client
	PubsubClient    *pubsub.Client
	MongoClient     *mongo.Client
	GenAIClient     *genai.Client
	LLM             LanguageModel
	PubSubListeners map[string]*PubSubListener // keyed like Config.TopicSubscriptions
}

// Close disconnects every client that was created.
func (c *ServiceClients) Close(ctx context.Context) error {
	var err error
	if c.StorageClient != nil {
		err = errors.Join(err, c.StorageClient.Close())
	}
	if c.PubsubClient != nil {
		err = errors.Join(err, c.PubsubClient.Close())
	}
	if c.MongoClient != nil {
		err = errors.Join(err, c.MongoClient.Disconnect(ctx))
	}
	return err
}

// NeedsStorage reports whether any configured component reads or writes
// Cloud Storage.
func (c *Config) NeedsStorage() bool {
	return c.PromptStore.PromptsBucket != "" || c.Transcription.Cache == CacheGCS
}

// NewServiceClients connects every client required by config.
func NewServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	clients := &ServiceClients{PubSubListeners: make(map[string]*PubSubListener)}
	fail := func(err error) (*ServiceClients, error) {
		_ = clients.Close(ctx)
		return nil, err
	}
	var err error

	if config.NeedsStorage() {
		if clients.StorageClient, err = storage.NewClient(ctx); err != nil {
			return fail(fmt.Errorf("failed to create storage client: %w", err))
		}
	}

	if len(config.TopicSubscriptions) > 0 {
		if clients.PubsubClient, err = pubsub.NewClient(ctx, config.Application.GoogleProjectId); err != nil {
			return fail(fmt.Errorf("failed to create pubsub client: %w", err))
		}
		for key, sub := range config.TopicSubscriptions {
			clients.PubSubListeners[key] = NewPubSubListener(clients.PubsubClient, sub.Name, nil)
		}
	}

	if config.PromptStore.Driver == StoreDriverMongo {
		clients.MongoClient, err = prompts.ConnectMongo(ctx, config.PromptStore.MongoDBURL,
			config.PromptStore.MinPoolSize, config.PromptStore.MaxPoolSize)
		if err != nil {
			return fail(err)
		}
	}

	var model LanguageModel
	switch config.LLM.Provider {
	case ProviderVertex:
		if clients.GenAIClient, err = NewVertexClient(ctx, config.Application.GoogleProjectId, config.Application.GoogleLocation); err != nil {
			return fail(err)
		}
		model = NewVertexModel(clients.GenAIClient, config.LLM.Model)
	case ProviderOpenAI, "":
		model = NewOpenAIModel(config.LLM.APIKey, config.LLM.APIBase, config.LLM.Model)
	default:
		return fail(fmt.Errorf("unknown llm provider %q", config.LLM.Provider))
	}
	clients.LLM = NewQuotaAwareModel(model, config.LLM.RateLimit)

	slog.InfoContext(ctx, "service clients ready",
		"llm_provider", config.LLM.Provider,
		"llm_model", config.LLM.Model,
		"llm_api_key", MaskKey(config.LLM.APIKey),
		"assemblyai_api_key", MaskKey(config.Transcription.APIKey),
		"prompt_store", config.PromptStore.Driver,
		"storage", clients.StorageClient != nil,
		"subscriptions", len(clients.PubSubListeners))
	return clients, nil
}
