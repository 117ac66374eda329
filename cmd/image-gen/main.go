/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements a one-shot image generation CLI: it renders a
// text prompt with the OpenAI API and writes the result as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/nova-labs/automation/imagegen"
)

type config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY,required"`
	Model        string `env:"IMAGE_MODEL,default=gpt-image-1"`
	Size         string `env:"IMAGE_SIZE,default=1024x1024"`
	Quality      string `env:"IMAGE_QUALITY,default=high"`
	OutputDir    string `env:"OUTPUT_DIR,default=generated_images"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	prompt := flag.String("prompt", "", "text description of the image to generate")
	output := flag.String("output", "", "output file path (default: <output-dir>/generated_<timestamp>.png)")
	flag.Parse()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	if *prompt == "" {
		clog.FatalContextf(ctx, "-prompt is required")
	}

	path := *output
	if path == "" {
		path = filepath.Join(cfg.OutputDir, fmt.Sprintf("generated_%s.png", time.Now().Format("20060102_150405")))
	}

	gen, err := imagegen.New(imagegen.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.Model,
		Size:    cfg.Size,
		Quality: cfg.Quality,
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating image generator: %v", err)
	}

	data, err := gen.Generate(ctx, *prompt)
	if err != nil {
		clog.FatalContextf(ctx, "generating image: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		clog.FatalContextf(ctx, "creating output directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		clog.FatalContextf(ctx, "writing image: %v", err)
	}

	clog.InfoContextf(ctx, "Image saved: %s", path)
}
