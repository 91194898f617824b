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
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-script-generation/internal/core/model"
)

// AudioRouter registers the /audio routes. Provider failures are reported
// in the response body with success false; only malformed requests are
// rejected with 422.
func AudioRouter(r *gin.RouterGroup, studio AudioStudio) {
	group := r.Group("/audio")
	{
		group.POST("/generate", func(c *gin.Context) {
			var req model.AudioGenerateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			c.JSON(http.StatusOK, studio.Generate(c.Request.Context(), &req))
		})

		group.POST("/generate-list", func(c *gin.Context) {
			var reqs []*model.AudioGenerateRequest
			if err := c.ShouldBindJSON(&reqs); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			c.JSON(http.StatusOK, studio.GenerateList(c.Request.Context(), reqs))
		})

		group.POST("/clone-voice", func(c *gin.Context) {
			var req model.VoiceCloneRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			c.JSON(http.StatusOK, studio.CloneVoice(c.Request.Context(), &req))
		})

		group.POST("/voice-details", func(c *gin.Context) {
			var req model.VoiceDetailsRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				detail(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			c.JSON(http.StatusOK, studio.VoiceDetails(c.Request.Context(), &req))
		})

		group.GET("/keys", func(c *gin.Context) {
			c.JSON(http.StatusOK, studio.KeysDetails(c.Request.Context()))
		})
	}
}
