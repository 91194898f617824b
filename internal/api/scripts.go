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

package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// ScriptRouter registers the /scripts routes.
func ScriptRouter(r *gin.RouterGroup, scripts ScriptGenerator) {
	group := r.Group("/scripts")
	{
		group.POST("/generate", func(c *gin.Context) {
			var req model.ScriptGenerationRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			out, err := scripts.Generate(c.Request.Context(), &req)
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "script generation failed", "kind", model.KindOf(err), "error", err)
				detail(c, http.StatusInternalServerError, "Script generation failed: "+err.Error())
				return
			}
			c.JSON(http.StatusOK, out)
		})

		group.POST("/description-contextuel/generate", func(c *gin.Context) {
			var req model.ContextualDescriptionRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			out, err := scripts.GenerateContextualDescription(c.Request.Context(), &req)
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "contextual description generation failed", "kind", model.KindOf(err), "error", err)
				detail(c, http.StatusInternalServerError, "Contextual description generation failed: "+err.Error())
				return
			}
			c.JSON(http.StatusOK, out)
		})

		group.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, scripts.Health(c.Request.Context()))
		})
	}
}
