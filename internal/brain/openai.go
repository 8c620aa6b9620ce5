// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package brain wraps the language-model, STT, and TTS provider calls.
package brain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/morganforge/alfred/internal/memory"
)

// LiveProvider calls the hosted OpenAI APIs for chat, transcription, and
// speech synthesis.
type LiveProvider struct {
	client *openai.Client
	opts   Options
}

// NewLiveProvider creates a provider backed by the OpenAI API.
func NewLiveProvider(apiKey string, opts Options) *LiveProvider {
	return &LiveProvider{
		client: openai.NewClient(apiKey),
		opts:   opts,
	}
}

// Chat sends the assembled prompt and returns the single completion.
// Remote failures propagate; the outermost handler embeds them in the reply.
func (p *LiveProvider) Chat(ctx context.Context, message string, history []memory.Turn, businessContext string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.opts.model(),
		Messages:    buildMessages(p.opts.systemPrompt(), history, businessContext, message),
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe runs Whisper over the audio bytes.
func (p *LiveProvider) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	if p.opts.MockTranscription {
		return MockTranscript, nil
	}

	if filename == "" {
		filename = "audio.m4a"
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		log.Printf("STT | transcription failed: %v", err)
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}

// Speak synthesizes speech for the text. Any remote failure is logged and
// converted to empty audio; the client then falls back to local synthesis.
func (p *LiveProvider) Speak(ctx context.Context, text, voice, format string) ([]byte, error) {
	if voice == "" {
		voice = DefaultVoice
	}
	if format == "" {
		format = DefaultAudioFormat
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormat(format),
	})
	if err != nil {
		log.Printf("TTS | speech synthesis failed: %v", err)
		return nil, nil
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		log.Printf("TTS | reading audio stream failed: %v", err)
		return nil, nil
	}
	return audio, nil
}
