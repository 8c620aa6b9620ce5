// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP API for the Alfred conversational backend.
//
// Endpoints:
//   - POST /chat   - Text conversation (commands and model chat)
//   - POST /stt    - Speech-to-text transcription (multipart audio upload)
//   - POST /tts    - Text-to-speech synthesis (returns audio bytes)
//   - GET  /health - Health check
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/morganforge/alfred/internal/brain"
	"github.com/morganforge/alfred/internal/chat"
	"github.com/morganforge/alfred/internal/memory"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address for the HTTP server.
	DefaultAddr = ":8000"

	// MaxRequestBodySize limits JSON request bodies (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// MaxAudioUploadSize limits multipart audio uploads (15MB, roughly a
	// minute of uncompressed phone audio with headroom).
	MaxAudioUploadSize = 15 * 1024 * 1024

	// Version is the server version.
	Version = "0.1.0"
)

// ============================================================================
// API TYPES
// ============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse is the body of a successful POST /chat.
type ChatResponse struct {
	Reply   string        `json:"reply"`
	History []memory.Turn `json:"history"`
}

// STTResponse is the body of a successful POST /stt.
type STTResponse struct {
	Text string `json:"text"`
}

// TTSRequest is the body of POST /tts. Voice and Format fall back to the
// server's configured voice and mp3 when omitted.
type TTSRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice,omitempty"`
	Format string `json:"format,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Alfred string `json:"alfred"`
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the HTTP API server fronting the orchestrator and provider.
type Server struct {
	addr   string
	router *http.ServeMux
	server *http.Server

	chat     *chat.Orchestrator
	provider brain.Provider
	cors     *CORSConfig
	voice    string
}

// NewServer creates a Server bound to addr. If addr is empty, the default
// address (":8000") is used.
func NewServer(addr string, orch *chat.Orchestrator, provider brain.Provider) *Server {
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		addr:     addr,
		router:   http.NewServeMux(),
		chat:     orch,
		provider: provider,
		cors:     DefaultCORSConfig(),
	}

	s.setupRoutes()
	return s
}

// WithCORS sets a custom CORS configuration.
func (s *Server) WithCORS(config *CORSConfig) *Server {
	s.cors = config
	return s
}

// WithVoice sets the default synthesis voice used when a TTS request does
// not name one.
func (s *Server) WithVoice(voice string) *Server {
	s.voice = voice
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		RequestIDMiddleware(),
		LoggingMiddleware(log.Default()),
		CORSMiddleware(s.cors),
	)(s.router)
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /chat", s.handleChat)
	s.router.HandleFunc("POST /stt", s.handleSTT)
	s.router.HandleFunc("POST /tts", s.handleTTS)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// ============================================================================
// CHAT HANDLER
// ============================================================================

// handleChat handles POST /chat.
//
// Backend failures degrade into an in-band error reply with HTTP 200 so a
// voice client always has something to speak.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CHAT_API | invalid request body | error=%v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, history, err := s.chat.Respond(r.Context(), req.UserID, req.Message)
	if err != nil {
		log.Printf("CHAT_API | respond failed | user=%s error=%v", req.UserID, err)
		s.writeJSON(w, http.StatusOK, ChatResponse{
			Reply:   fmt.Sprintf("Error: %v", err),
			History: []memory.Turn{},
		})
		return
	}

	if history == nil {
		history = []memory.Turn{}
	}
	s.writeJSON(w, http.StatusOK, ChatResponse{Reply: reply, History: history})
}

// ============================================================================
// STT HANDLER
// ============================================================================

// handleSTT handles POST /stt. Expects a multipart form with an "audio" file
// field and returns the transcript as JSON.
func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxAudioUploadSize)

	file, header, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing audio file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		log.Printf("STT_API | read upload failed | error=%v", err)
		s.writeError(w, http.StatusBadRequest, "Could not read audio file")
		return
	}

	text, err := s.provider.Transcribe(r.Context(), audio, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, brain.ErrNoCredential) {
			s.writeError(w, http.StatusInternalServerError, brain.ErrNoCredential.Error())
			return
		}
		log.Printf("STT_API | transcription failed | file=%s error=%v", header.Filename, err)
		s.writeError(w, http.StatusInternalServerError, "Transcription failed")
		return
	}

	s.writeJSON(w, http.StatusOK, STTResponse{Text: text})
}

// ============================================================================
// TTS HANDLER
// ============================================================================

// handleTTS handles POST /tts. Returns raw audio bytes; an empty body means
// the client should fall back to its local speech synthesis.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("TTS_API | invalid request body | error=%v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")

	if req.Text == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	voice := req.Voice
	if voice == "" {
		voice = s.voice
	}
	audio, err := s.provider.Speak(r.Context(), req.Text, voice, req.Format)
	if err != nil {
		// Speak never fails in the live provider (it degrades to empty
		// audio), so an error here is a programming mistake worth logging.
		log.Printf("TTS_API | synthesis failed | error=%v", err)
		audio = nil
	}

	w.WriteHeader(http.StatusOK)
	if len(audio) > 0 {
		w.Write(audio)
	}
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Alfred: "online",
	})
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("SERVER_START | addr=%s version=%s", s.addr, Version)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	log.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
