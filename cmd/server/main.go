// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/sozercan/symptom-ai/internal/analyzer"
	"github.com/sozercan/symptom-ai/internal/config"
	"github.com/sozercan/symptom-ai/internal/llm"
	"github.com/sozercan/symptom-ai/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	llmProvider, err := llm.NewProvider(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	analyzer := analyzer.New(llmProvider, analyzer.Options{
		Model:       cfg.Model(),
		MaxTokens:   cfg.LLM.MaxOutputTokens,
		Temperature: cfg.LLM.Temperature,
	})

	srv := server.New(cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "provider", cfg.LLM.Provider)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
