/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config carries the image generation settings.
type Config struct {
	// APIKey authenticates OpenAI API requests.
	APIKey string

	// Model is the image model to invoke. Defaults to gpt-image-1.
	Model string

	// Size is the output dimensions, e.g. "1024x1024", "1024x1536",
	// "1536x1024". Defaults to 1024x1024.
	Size string

	// Quality is the rendering quality: "low", "medium", "high", or
	// "auto". Defaults to high.
	Quality string
}

// Generator produces images via the OpenAI API.
type Generator struct {
	client  openai.Client
	model   string
	size    string
	quality string
}

// New constructs a Generator from the given configuration.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-image-1"
	}
	if cfg.Size == "" {
		cfg.Size = "1024x1024"
	}
	if cfg.Quality == "" {
		cfg.Quality = "high"
	}
	return &Generator{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		size:    cfg.Size,
		quality: cfg.Quality,
	}, nil
}

// Generate renders the prompt and returns the decoded PNG bytes.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, errors.New("prompt cannot be empty")
	}

	log := clog.FromContext(ctx)
	log.With("model", g.model).
		With("size", g.size).
		Info("Generating image")

	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  prompt,
		Model:   openai.ImageModel(g.model),
		Size:    openai.ImageGenerateParamsSize(g.size),
		Quality: openai.ImageGenerateParamsQuality(g.quality),
		N:       openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no image data in response")
	}
	return decodePayload(resp.Data[0].B64JSON)
}

// decodePayload turns the API's base64 payload into raw image bytes.
func decodePayload(b64 string) ([]byte, error) {
	if b64 == "" {
		return nil, errors.New("empty image payload")
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	return data, nil
}
