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

// Package api exposes the script generation service over HTTP with gin.
package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/prompts"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// ServiceName is reported by the root health check.
const ServiceName = "script-generation"

// ScriptGenerator is implemented by services.ScriptService.
type ScriptGenerator interface {
	Generate(ctx context.Context, req *model.ScriptGenerationRequest) (*model.ScriptGenerationResponse, error)
	GenerateContextualDescription(ctx context.Context, req *model.ContextualDescriptionRequest) (*model.ContextualDescriptionResponse, error)
	Health(ctx context.Context) model.HealthReport
}

// PromptCatalog is implemented by services.PromptService.
type PromptCatalog interface {
	List(ctx context.Context, skip, limit int64) ([]*prompts.Prompt, error)
	Migrate(ctx context.Context) (*prompts.MigrationReport, error)
}

// AudioStudio is implemented by audio.Service.
type AudioStudio interface {
	Generate(ctx context.Context, req *model.AudioGenerateRequest) *model.AudioGenerateResponse
	GenerateList(ctx context.Context, reqs []*model.AudioGenerateRequest) []*model.AudioGenerateResponse
	CloneVoice(ctx context.Context, req *model.VoiceCloneRequest) *model.VoiceCloneResponse
	VoiceDetails(ctx context.Context, req *model.VoiceDetailsRequest) *model.VoiceDetailsResponse
	KeysDetails(ctx context.Context) *model.AudioKeysReport
}

// NewRouter builds the gin engine: tracing and CORS middleware, the root
// health check and every route below the configured API prefix.
func NewRouter(config *cloud.Config, scripts ScriptGenerator, catalog PromptCatalog, studio AudioStudio) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(corsMiddleware(config.Application.AllowedHosts))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     ServiceName,
			"version":     config.Application.Version,
			"environment": config.Application.Environment,
		})
	})

	apiV1 := r.Group(config.Application.APIPrefix)
	{
		ScriptRouter(apiV1, scripts)
		AudioRouter(apiV1, studio)
		PromptRouter(apiV1, catalog)
		AdminRouter(apiV1, catalog)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return cors.Default()
	}
	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowCredentials = true
	return cors.New(config)
}

// detail writes the error body shape shared by every endpoint.
func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}
