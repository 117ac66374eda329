/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
)

// salientMarkers are the literal substrings that flag a log line as
// diagnostically relevant. Each check is independent and case-sensitive;
// this is intentionally not one case-insensitive match.
var salientMarkers = []string{"Error", "FAILED", "error:", "ERROR", "FAILURE"}

// maxSalientLines bounds how many matched lines are kept per job. When more
// lines match, the final ones win since failures tend to conclude a log.
const maxSalientLines = 10

// isSalient reports whether the line contains any salient marker.
func isSalient(line string) bool {
	for _, marker := range salientMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// salientLines filters the log to its salient lines, preserving order and
// keeping only the last maxSalientLines matches.
func salientLines(log string) []string {
	var matches []string
	for _, line := range strings.Split(log, "\n") {
		if isSalient(line) {
			matches = append(matches, line)
		}
	}
	if len(matches) > maxSalientLines {
		matches = matches[len(matches)-maxSalientLines:]
	}
	return matches
}

// extractLogs builds one LogExcerpt per failed job, in job-list order. A log
// fetch failure for one job degrades that job's excerpt and moves on; it
// never fails the extraction as a whole.
func (p *Pipeline) extractLogs(ctx context.Context, jobs []JobRecord) []LogExcerpt {
	log := clog.FromContext(ctx)

	excerpts := make([]LogExcerpt, 0, len(jobs))
	for _, job := range jobs {
		raw, err := p.gh.JobLog(ctx, job.ID)
		if err != nil {
			log.With("job", job.Name).
				With("error", err).
				Warn("Could not fetch job logs, recording degraded section")
			excerpts = append(excerpts, LogExcerpt{Job: job, Degraded: true})
			continue
		}
		excerpts = append(excerpts, LogExcerpt{Job: job, Lines: salientLines(raw)})
	}
	return excerpts
}

// section renders the excerpt as one per-job block of the aggregated report.
func (e LogExcerpt) section() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Job: %s\n", e.Job.Name)
	fmt.Fprintf(&sb, "Conclusion: %s\n", e.Job.Conclusion)
	fmt.Fprintf(&sb, "Started: %s\n", e.Job.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&sb, "Completed: %s\n", e.Job.CompletedAt.Format("2006-01-02T15:04:05Z07:00"))

	switch {
	case e.Degraded:
		sb.WriteString("Could not fetch detailed logs for this job.\n")
	case len(e.Lines) > 0:
		sb.WriteString("Relevant log lines:\n```\n")
		for _, line := range e.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteString("```\n")
	default:
		sb.WriteString("No log lines matched the failure patterns.\n")
	}
	return sb.String()
}

// aggregate concatenates per-job sections in job-list order.
func aggregate(excerpts []LogExcerpt) string {
	sections := make([]string, 0, len(excerpts))
	for _, e := range excerpts {
		sections = append(sections, e.section())
	}
	return strings.Join(sections, "\n")
}
