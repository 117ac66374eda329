/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
)

// reportHeader opens every posted comment so readers can identify automated
// output at a glance.
const reportHeader = "## 🤖 Automated Failure Analysis"

// commentBody wraps the diagnosis in the fixed markdown reporting template.
func commentBody(report DiagnosisReport) string {
	return fmt.Sprintf(`%s

**Workflow:** %s

%s

---
*This analysis was generated automatically from the failed run's logs.*`,
		reportHeader, report.RunName, report.Text)
}

// report posts the diagnosis as exactly one comment. The target is the
// run's pull request when one exists, otherwise the triggering commit.
// Re-running the pipeline posts a duplicate comment; there is no
// idempotency guard.
func (p *Pipeline) report(ctx context.Context, run RunReference, report DiagnosisReport) error {
	log := clog.FromContext(ctx)
	body := commentBody(report)

	if run.PullRequest > 0 {
		log.With("pull_request", run.PullRequest).Info("Posting diagnosis on pull request")
		if err := p.gh.CommentOnPullRequest(ctx, run.PullRequest, body); err != nil {
			return fmt.Errorf("commenting on pull request #%d: %w", run.PullRequest, err)
		}
		return nil
	}

	log.With("sha", run.HeadSHA).Info("Posting diagnosis on commit")
	if err := p.gh.CommentOnCommit(ctx, run.HeadSHA, body); err != nil {
		return fmt.Errorf("commenting on commit %s: %w", run.HeadSHA, err)
	}
	return nil
}
