/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the issue triage bot. Given an issue number it
// asks the model for a short triage summary of the issue and posts it back
// as a comment. A missing issue number is a no-op, not an error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/sethvargo/go-envconfig"

	"github.com/nova-labs/automation/githubops"
	"github.com/nova-labs/automation/inference"
)

// summaryMaxTokens bounds the triage summary; these are short by design.
const summaryMaxTokens = 1000

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	Repository  string `env:"GITHUB_REPOSITORY,required"`

	// IssueNumber may be absent when the triggering event carried no
	// issue, in which case the invocation is a no-op.
	IssueNumber string `env:"ISSUE_NUMBER"`

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

	if err := run(ctx, cfg); err != nil {
		clog.FatalContextf(ctx, "issue bot failed: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	log := clog.FromContext(ctx)

	if cfg.IssueNumber == "" {
		log.Info("No issue number supplied, nothing to triage")
		return nil
	}
	number, err := strconv.Atoi(cfg.IssueNumber)
	if err != nil {
		return fmt.Errorf("parsing issue number %q: %w", cfg.IssueNumber, err)
	}

	res, err := githubops.ParseRepository(cfg.Repository)
	if err != nil {
		return fmt.Errorf("parsing repository: %w", err)
	}

	gh, err := githubops.NewClient(ctx, cfg.GitHubToken)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}
	issue, _, err := gh.Issues.Get(ctx, res.Owner, res.Repo, number)
	if err != nil {
		return fmt.Errorf("fetching issue #%d: %w", number, err)
	}

	prompt, err := buildTriagePrompt(res.String(), issue.GetTitle(), issue.GetBody())
	if err != nil {
		return fmt.Errorf("building triage prompt: %w", err)
	}

	llm, err := inference.New(ctx, inference.Config{
		Model:      cfg.ModelID,
		MaxTokens:  summaryMaxTokens,
		UseBedrock: cfg.UseBedrock,
		Region:     cfg.AWSRegion,
		APIKey:     cfg.AnthropicAPIKey,
	})
	if err != nil {
		return fmt.Errorf("creating inference client: %w", err)
	}

	summary, err := llm.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("requesting triage summary: %w", err)
	}

	body := fmt.Sprintf("## 🤖 Automated Issue Triage\n\n%s", summary)
	if _, _, err := gh.Issues.CreateComment(ctx, res.Owner, res.Repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	}); err != nil {
		return fmt.Errorf("commenting on issue #%d: %w", number, err)
	}

	log.With("issue", number).Info("Posted triage summary")
	return nil
}
