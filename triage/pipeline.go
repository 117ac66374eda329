/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chainguard-dev/clog"

	"github.com/nova-labs/automation/inference"
)

// Outcome classifies how a pipeline invocation ended. Skips are normal
// completions (exit 0), not errors.
type Outcome int

const (
	// OutcomeSkippedNoRun means the required run identifier was absent.
	OutcomeSkippedNoRun Outcome = iota

	// OutcomeSkippedNoFailures means the run had no failed jobs.
	OutcomeSkippedNoFailures

	// OutcomeReported means a diagnosis comment was posted.
	OutcomeReported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkippedNoRun:
		return "skipped: no run identifier"
	case OutcomeSkippedNoFailures:
		return "skipped: no failed jobs"
	case OutcomeReported:
		return "reported"
	default:
		return "unknown"
	}
}

// Pipeline wires the five triage stages over explicit collaborators so
// tests can substitute fakes for the hosted services.
type Pipeline struct {
	cfg Config
	gh  GitHub
	llm inference.TextGenerator
}

// New constructs a Pipeline.
func New(cfg Config, gh GitHub, llm inference.TextGenerator) *Pipeline {
	return &Pipeline{cfg: cfg, gh: gh, llm: llm}
}

// Run executes the pipeline once: locate → extract → prompt → diagnose →
// report. Data flows strictly forward; jobs are processed one at a time.
// Any error returned here is fatal to the invocation.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	log := clog.FromContext(ctx)

	run, ok, err := p.locate(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return OutcomeSkippedNoRun, nil
	}

	jobs, err := p.gh.ListJobs(ctx, run.ID)
	if err != nil {
		return 0, fmt.Errorf("listing jobs for run %d: %w", run.ID, err)
	}

	var failed []JobRecord
	for _, job := range jobs {
		if job.Failed() {
			failed = append(failed, job)
		}
	}
	if len(failed) == 0 {
		log.With("jobs", len(jobs)).Info("Run has no failed jobs, nothing to report")
		return OutcomeSkippedNoFailures, nil
	}
	log.With("failed_jobs", len(failed)).Info("Extracting logs from failed jobs")

	excerpts := p.extractLogs(ctx, failed)

	prompt, err := buildPrompt(run, p.cfg.Repository(), aggregate(excerpts))
	if err != nil {
		return 0, fmt.Errorf("building diagnosis prompt: %w", err)
	}

	diagnosis, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("requesting diagnosis: %w", err)
	}

	if err := p.report(ctx, run, DiagnosisReport{RunName: run.Name, Text: diagnosis}); err != nil {
		return 0, err
	}

	return OutcomeReported, nil
}

func formatRunID(id int64) string {
	return strconv.FormatInt(id, 10)
}
