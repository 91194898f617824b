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

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/jaycherian/gcp-go-script-generation/internal/cloud"
	"github.com/zeebo/assert"
	"go.opentelemetry.io/otel"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":         slog.LevelInfo,
		"info":     slog.LevelInfo,
		"DEBUG":    slog.LevelDebug,
		"Warning":  slog.LevelWarn,
		"CRITICAL": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerUsesCloudLoggingKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Warn("careful", "prompt", "title_prompt")
	logger.Debug("hidden")

	var record map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARNING", record["severity"])
	assert.Equal(t, "careful", record["message"])
	assert.Equal(t, "title_prompt", record["prompt"])
	_, hasTimestamp := record["timestamp"]
	assert.True(t, hasTimestamp)
}

func TestLoggerAddsTraceCorrelation(t *testing.T) {
	config := cloud.NewConfig()
	shutdown, err := SetupOpenTelemetry(context.Background(), config)
	assert.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).With("component", "test")

	ctx, span := otel.Tracer("telemetry-test").Start(context.Background(), "span")
	logger.InfoContext(ctx, "inside span")
	span.End()

	var record map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, span.SpanContext().TraceID().String(), record["logging.googleapis.com/trace"])
	assert.Equal(t, "test", record["component"])
}
