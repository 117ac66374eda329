/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"time"
)

// RunReference identifies the workflow run under inspection. It is built
// once per invocation and never mutated.
type RunReference struct {
	ID      int64
	Name    string
	HeadSHA string

	// PullRequest is the review-request number the run is associated with,
	// or 0 when the run was not triggered from a pull request.
	PullRequest int
}

// JobRecord is one executed unit within a run, as reported by the Actions
// API.
type JobRecord struct {
	ID          int64
	Name        string
	Conclusion  string
	StartedAt   time.Time
	CompletedAt time.Time
}

// Failed reports whether the job concluded in failure.
func (j JobRecord) Failed() bool {
	return j.Conclusion == "failure"
}

// LogExcerpt is the reduced evidence extracted from one failed job.
type LogExcerpt struct {
	Job JobRecord

	// Lines holds the salient log lines in original order, truncated to the
	// final matches.
	Lines []string

	// Degraded is set when the job's logs could not be fetched.
	Degraded bool
}

// DiagnosisReport is the model's free-text analysis of the run.
type DiagnosisReport struct {
	RunName string
	Text    string
}

// GitHub is the surface of the GitHub API the pipeline consumes. The
// production implementation wraps go-github; tests substitute fakes.
type GitHub interface {
	// GetRun fetches run metadata by identifier.
	GetRun(ctx context.Context, runID int64) (RunReference, error)

	// ListJobs returns the run's jobs in API order.
	ListJobs(ctx context.Context, runID int64) ([]JobRecord, error)

	// JobLog fetches the raw log text for a job.
	JobLog(ctx context.Context, jobID int64) (string, error)

	// CommentOnPullRequest posts body as a comment on the pull request.
	CommentOnPullRequest(ctx context.Context, number int, body string) error

	// CommentOnCommit posts body as a comment on the commit.
	CommentOnCommit(ctx context.Context, sha string, body string) error
}
