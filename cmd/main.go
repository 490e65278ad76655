package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Mufasa-Assistant/server/internal/config"
	"Mufasa-Assistant/server/internal/engine"
	"Mufasa-Assistant/server/internal/generators"
	"Mufasa-Assistant/server/internal/lessons"
	"Mufasa-Assistant/server/internal/logger"
	"Mufasa-Assistant/server/internal/storage"
	"Mufasa-Assistant/server/internal/web"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	if cfg.AI.APIKey == "" {
		logg.Warn("no completion API key configured, ask endpoints will return 503")
	}

	store, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		logg.Fatal("failed to initialize file store", "error", err)
	}

	client := engine.NewClient(cfg.AI)
	eng := engine.NewEngine(client, store, logg, cfg.AI.Temperature)

	voice := generators.NewVoiceClient(cfg.Voice)
	if !voice.TTSConfigured() {
		logg.Warn("no TTS sidecar configured, /api/voice/tts will return 503")
	}
	if !voice.STTConfigured() {
		logg.Warn("no STT sidecar configured, /api/voice/stt will return 503")
	}

	lib := lessons.NewLibrary(cfg.Lessons.Dir, cfg.Lessons.Tracks)

	r := web.NewRouter(cfg, logg, eng, voice, lib)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logg.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logg.Error("server shutdown error", "error", err)
	}

	logg.Info("server stopped")
}
