/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package triage implements the CI failure-triage pipeline: locate the
// workflow run under inspection, extract salient lines from the logs of its
// failed jobs, build a diagnosis prompt, request an analysis from a hosted
// model, and post the result as a comment on the pull request (or the
// triggering commit when no pull request exists).
//
// The pipeline is strictly sequential and runs once per invocation. Stages
// report skips through the Outcome type rather than errors; only transport
// and parse faults surface as errors, and the entry point maps those to a
// non-zero exit. A per-job log fetch failure is downgraded to a degraded
// section in the report and never aborts the pipeline.
package triage
