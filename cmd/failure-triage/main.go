/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the CI failure-triage pipeline. It runs once per
// invocation: it locates the failed workflow run, extracts salient log lines
// from its failed jobs, requests a diagnosis from the model, and posts the
// diagnosis back to the pull request or commit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/nova-labs/automation/githubops"
	"github.com/nova-labs/automation/inference"
	"github.com/nova-labs/automation/triage"
)

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	Repository  string `env:"GITHUB_REPOSITORY,required"`

	// Workflow event context. RUN_ID may be absent when the triggering
	// event carried no run, in which case the invocation is a no-op.
	RunID    string `env:"RUN_ID"`
	RunName  string `env:"RUN_NAME"`
	HeadSHA  string `env:"HEAD_SHA"`
	PRNumber string `env:"PR_NUMBER"`

	// Inference configuration.
	ModelID         string `env:"MODEL_ID,default=claude-sonnet-4-5-20250929"`
	UseBedrock      bool   `env:"USE_BEDROCK,default=false"`
	AWSRegion       string `env:"AWS_REGION,default=us-east-1"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	res, err := githubops.ParseRepository(cfg.Repository)
	if err != nil {
		clog.FatalContextf(ctx, "parsing repository: %v", err)
	}

	gh, err := githubops.NewClient(ctx, cfg.GitHubToken)
	if err != nil {
		clog.FatalContextf(ctx, "creating GitHub client: %v", err)
	}

	llm, err := inference.New(ctx, inference.Config{
		Model:      cfg.ModelID,
		MaxTokens:  triage.DiagnosisMaxTokens,
		UseBedrock: cfg.UseBedrock,
		Region:     cfg.AWSRegion,
		APIKey:     cfg.AnthropicAPIKey,
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating inference client: %v", err)
	}

	pipeline := triage.New(triage.Config{
		Owner:       res.Owner,
		Repo:        res.Repo,
		RunID:       cfg.RunID,
		RunName:     cfg.RunName,
		HeadSHA:     cfg.HeadSHA,
		PullRequest: cfg.PRNumber,
	}, triage.NewGitHub(gh, res), llm)

	outcome, err := pipeline.Run(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "triage failed: %v", err)
	}
	clog.InfoContextf(ctx, "Triage finished: %s", outcome)
}
