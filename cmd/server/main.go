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

// Command script-service serves the script generation API and runs its
// maintenance tasks.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-script-generation/internal/api"
	"github.com/spf13/cobra"
)

var (
	configDir string
	runtime   string
	object    string
)

var rootCmd = &cobra.Command{
	Use:   "script-service",
	Short: "LLM video script generation service",
	Long: `script-service generates video scripts, titles, keywords and
descriptions with a language model.

Commands:
  script-service                  Serve the HTTP API (default)
  script-service serve            Serve the HTTP API
  script-service migrate-prompts  Load the prompt templates into the store`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return SetupOS(configDir, runtime)
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API until SIGINT or SIGTERM",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate-prompts",
	Short: "Upsert the prompt templates listed in the manifest",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding the .env*.toml files (default $GCP_CONFIG_PREFIX or configs)")
	rootCmd.PersistentFlags().StringVar(&runtime, "runtime", "", "configuration overlay to apply (default $GCP_RUNTIME or local)")
	migrateCmd.Flags().StringVar(&object, "object", "", "migrate only this prompt file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	state, err := InitState(ctx)
	if err != nil {
		return err
	}
	defer state.Close(context.Background())

	state.StartListeners(ctx)

	if state.config.Application.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(state.config, state.scriptService, state.promptService, state.audioService)

	addr := ":" + strconv.Itoa(state.config.Application.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen", "error", err)
			cancel()
		}
	}()
	slog.Info("server ready", "addr", addr, "api_prefix", state.config.Application.APIPrefix)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return err
	}
	slog.Info("server exiting")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	state, err := InitState(ctx)
	if err != nil {
		return err
	}
	defer state.Close(context.Background())

	if object != "" {
		if state.migrator == nil {
			return errors.New("prompt migration is not configured")
		}
		prompt, err := state.migrator.MigrateObject(ctx, object)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "upserted %s (%s)\n", prompt.Name, prompt.Language)
		return nil
	}

	report, err := state.promptService.Migrate(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
