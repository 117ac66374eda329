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
)

// Config carries the externally supplied identifiers for one pipeline
// invocation. Values arrive as strings because they come from workflow event
// context; normalization happens in locate.
type Config struct {
	// Owner and Repo identify the repository under automation.
	Owner string
	Repo  string

	// RunID is the workflow run identifier. Empty means the triggering event
	// supplied no run, which is a terminal skip rather than an error.
	RunID string

	// RunName is the run's display name. Resolved from run metadata when
	// empty.
	RunName string

	// HeadSHA is the triggering revision.
	HeadSHA string

	// PullRequest is the review-request number, or absent. Upstream event
	// serialization produces the literal string "null" for an absent value,
	// so both spellings are treated as the same sentinel.
	PullRequest string
}

// Repository returns the owner/repo form for prompt embedding.
func (c Config) Repository() string {
	return c.Owner + "/" + c.Repo
}

// locate resolves the run under inspection. ok is false when the required
// run identifier is absent (missing-input skip). Run metadata is fetched
// only when the run name or head SHA was not supplied by the event.
func (p *Pipeline) locate(ctx context.Context) (RunReference, bool, error) {
	log := clog.FromContext(ctx)

	if p.cfg.RunID == "" {
		log.Info("No run identifier supplied, nothing to triage")
		return RunReference{}, false, nil
	}

	id, err := strconv.ParseInt(p.cfg.RunID, 10, 64)
	if err != nil {
		return RunReference{}, false, fmt.Errorf("parsing run identifier %q: %w", p.cfg.RunID, err)
	}

	prNumber, err := parsePullRequest(p.cfg.PullRequest)
	if err != nil {
		return RunReference{}, false, err
	}

	run := RunReference{
		ID:          id,
		Name:        p.cfg.RunName,
		HeadSHA:     p.cfg.HeadSHA,
		PullRequest: prNumber,
	}

	if run.Name == "" || run.HeadSHA == "" {
		meta, err := p.gh.GetRun(ctx, id)
		if err != nil {
			return RunReference{}, false, fmt.Errorf("fetching run metadata: %w", err)
		}
		if run.Name == "" {
			run.Name = meta.Name
		}
		if run.HeadSHA == "" {
			run.HeadSHA = meta.HeadSHA
		}
	}

	log.With("run_id", run.ID).
		With("run_name", run.Name).
		Info("Located workflow run")
	return run, true, nil
}

// parsePullRequest normalizes the review-request number. Absent and the
// literal "null" are the same sentinel: no associated pull request.
func parsePullRequest(raw string) (int, error) {
	if raw == "" || raw == "null" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing pull request number %q: %w", raw, err)
	}
	return n, nil
}
