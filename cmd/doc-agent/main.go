/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the documentation agent. It pulls the default
// branch of a local clone, and when new commits arrived it lets the model
// improve the documentation of the changed files on a dedicated branch,
// then pushes that branch and opens a pull request.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/sethvargo/go-envconfig"

	"github.com/nova-labs/automation/docagent"
	"github.com/nova-labs/automation/githubops"
	"github.com/nova-labs/automation/gitops"
	"github.com/nova-labs/automation/inference"
)

type config struct {
	GitHubToken string `env:"GITHUB_TOKEN,required"`
	Repository  string `env:"GITHUB_REPOSITORY,required"`
	RepoPath    string `env:"REPO_PATH,required"`
	BaseBranch  string `env:"BASE_BRANCH,default=main"`
	Identity    string `env:"COMMIT_IDENTITY,default=doc-agent"`

	// Inference configuration.
	ModelID         string `env:"MODEL_ID,default=claude-sonnet-4-5-20250929"`
	MaxTurns        int    `env:"MAX_TURNS,default=5"`
	MaxTokens       int64  `env:"MAX_TOKENS,default=8192"`
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
		clog.FatalContextf(ctx, "doc agent failed: %v", err)
	}
}

func run(ctx context.Context, cfg config) error {
	log := clog.FromContext(ctx)

	res, err := githubops.ParseRepository(cfg.Repository)
	if err != nil {
		return fmt.Errorf("parsing repository: %w", err)
	}

	repo, err := gitops.Open(cfg.RepoPath, cfg.GitHubToken, cfg.Identity)
	if err != nil {
		return err
	}

	changed, err := repo.Pull(ctx)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		log.Info("No new commits, nothing to document")
		return nil
	}

	head, err := repo.Head()
	if err != nil {
		return err
	}
	branch := gitops.DocBranch(head)
	if err := repo.CreateBranch(branch); err != nil {
		return err
	}
	log.With("branch", branch).
		With("files", len(changed)).
		Info("Created documentation branch")

	llm, err := inference.New(ctx, inference.Config{
		Model:      cfg.ModelID,
		MaxTokens:  cfg.MaxTokens,
		UseBedrock: cfg.UseBedrock,
		Region:     cfg.AWSRegion,
		APIKey:     cfg.AnthropicAPIKey,
	})
	if err != nil {
		return fmt.Errorf("creating inference client: %w", err)
	}

	editor, err := docagent.NewEditor(cfg.RepoPath)
	if err != nil {
		return err
	}
	agent, err := docagent.New(llm, editor, cfg.MaxTurns)
	if err != nil {
		return err
	}

	summary, err := agent.ProcessFiles(ctx, changed)
	if err != nil {
		return fmt.Errorf("running documentation agent: %w", err)
	}
	log.With("summary", summary).Info("Agent finished")

	edits := editor.EditCounts()
	if len(edits) == 0 {
		log.Info("Agent made no edits, skipping commit")
		return nil
	}

	short := gitops.ShortSHA(head)
	if _, err := repo.CommitAll(commitMessage(short, edits)); err != nil {
		return err
	}
	if err := repo.Push(ctx, branch); err != nil {
		return err
	}

	gh, err := githubops.NewClient(ctx, cfg.GitHubToken)
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}
	pr, _, err := gh.PullRequests.Create(ctx, res.Owner, res.Repo, &github.NewPullRequest{
		Title: github.Ptr(fmt.Sprintf("📝 Documentation improvements for %s", short)),
		Body:  github.Ptr(prBody(short, edits)),
		Base:  github.Ptr(cfg.BaseBranch),
		Head:  github.Ptr(branch),
	})
	if err != nil {
		return fmt.Errorf("creating pull request: %w", err)
	}
	log.With("url", pr.GetHTMLURL()).Info("Opened documentation pull request")

	return docagent.WriteSummary(os.Stdout, edits)
}

// commitMessage describes the documentation edits made for a commit.
func commitMessage(short string, edits map[string]int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Improve documentation for %d changed files\n\n", len(edits))
	fmt.Fprintf(&sb, "Documentation improvements for commit %s:\n", short)
	for _, file := range sortedFiles(edits) {
		fmt.Fprintf(&sb, "- %s\n", file)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// prBody renders the fixed pull request description.
func prBody(short string, edits map[string]int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## 📝 Documentation Improvements\n\n")
	fmt.Fprintf(&sb, "This PR improves documentation for %d files changed in commit `%s`.\n\n", len(edits), short)
	fmt.Fprintf(&sb, "### Files updated\n")
	for _, file := range sortedFiles(edits) {
		fmt.Fprintf(&sb, "- `%s`\n", file)
	}
	fmt.Fprintf(&sb, "\nDocumentation only; no functional code was modified.\n")
	return sb.String()
}

func sortedFiles(edits map[string]int) []string {
	files := make([]string, 0, len(edits))
	for file := range edits {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}
