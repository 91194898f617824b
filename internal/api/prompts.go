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
	"strconv"

	"github.com/gin-gonic/gin"
)

// PromptRouter registers the read-only prompt listing.
func PromptRouter(r *gin.RouterGroup, catalog PromptCatalog) {
	r.GET("/prompts", func(c *gin.Context) {
		skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
		if err != nil {
			detail(c, http.StatusUnprocessableEntity, "skip must be an integer")
			return
		}
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil {
			detail(c, http.StatusUnprocessableEntity, "limit must be an integer")
			return
		}
		out, err := catalog.List(c.Request.Context(), skip, limit)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "failed to list prompts", "error", err)
			detail(c, http.StatusInternalServerError, "Failed to list prompts: "+err.Error())
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

// AdminRouter registers the maintenance endpoints.
func AdminRouter(r *gin.RouterGroup, catalog PromptCatalog) {
	admin := r.Group("/admin")
	{
		admin.POST("/migrate_prompts", func(c *gin.Context) {
			report, err := catalog.Migrate(c.Request.Context())
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "prompt migration failed", "error", err)
				detail(c, http.StatusInternalServerError, "Failed to migrate prompts: "+err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message":  "Prompt migration initiated successfully.",
				"upserted": report.Upserted,
				"skipped":  report.Skipped,
			})
		})
	}
}
