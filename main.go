// alfred - conversational staff assistant backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/morganforge/alfred/internal/brain"
	"github.com/morganforge/alfred/internal/chat"
	"github.com/morganforge/alfred/internal/commands"
	"github.com/morganforge/alfred/internal/config"
	"github.com/morganforge/alfred/internal/memory"
	"github.com/morganforge/alfred/internal/server"
	"github.com/morganforge/alfred/internal/staff"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file falls back to defaults; a hard failure aborts.
		var verrs config.ValidateErrors
		if errors.As(err, &verrs) {
			return err
		}
		log.Printf("STARTUP | config load warning | error=%v", err)
	}

	// Staff directory
	store, err := staff.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open staff database: %w", err)
	}
	defer store.Close()

	// Table creation is best effort: a read-only database still serves chat.
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Init(initCtx); err != nil {
		log.Printf("STARTUP | staff table init failed | path=%s error=%v", cfg.Database.Path, err)
	}
	cancel()

	// Conversation memory
	mem := memory.NewStore(cfg.Memory.Path)

	// Model provider
	opts := brain.Options{
		SystemPrompt:      cfg.OpenAI.SystemPrompt,
		Model:             cfg.OpenAI.Model,
		MockTranscription: cfg.OpenAI.MockTranscription,
	}
	var provider brain.Provider
	if cfg.DevMode() {
		log.Printf("STARTUP | dev mode | no API key configured, using stub provider")
		provider = brain.NewStubProvider(opts)
	} else {
		provider = brain.NewLiveProvider(cfg.OpenAI.APIKey, opts)
	}

	orch := chat.New(commands.NewInterpreter(store), mem, store, provider)

	srv := server.NewServer(cfg.Server.Addr, orch, provider).
		WithVoice(cfg.OpenAI.Voice).
		WithCORS(&server.CORSConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         86400,
		})

	// Run the server until a shutdown signal arrives.
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		log.Printf("SHUTDOWN | signal=%v", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	// Snapshot the default session one last time before exit.
	if err := mem.Persist(memory.DefaultSession); err != nil {
		log.Printf("SHUTDOWN | memory persist failed | error=%v", err)
	}

	return nil
}
