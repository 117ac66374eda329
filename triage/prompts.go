/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import "github.com/nova-labs/automation/promptbuilder"

// DiagnosisMaxTokens bounds the model's output for a diagnosis request.
const DiagnosisMaxTokens = 2000

// diagnosisPrompt is the fixed instructional template for failure analysis.
// Building it is plain string interpolation; the output is deterministic
// given its inputs.
var diagnosisPrompt = promptbuilder.MustNewPrompt(`A GitHub Actions workflow run has failed and needs triage.

Workflow: {{run_name}}
Run ID: {{run_id}}
Repository: {{repository}}

Failed job details:

{{job_sections}}

Analyze the failure and respond with:
1. The most likely root cause.
2. Actionable steps to fix it.
3. Suggestions to prevent this class of failure, if applicable.

Keep the response concise and format it as markdown.`)

// buildPrompt embeds the run identity and the aggregated log excerpts into
// the diagnosis template.
func buildPrompt(run RunReference, repository, jobSections string) (string, error) {
	p, err := diagnosisPrompt.BindText("run_name", run.Name)
	if err != nil {
		return "", err
	}
	if p, err = p.BindText("run_id", formatRunID(run.ID)); err != nil {
		return "", err
	}
	if p, err = p.BindText("repository", repository); err != nil {
		return "", err
	}
	if p, err = p.BindText("job_sections", jobSections); err != nil {
		return "", err
	}
	return p.Build()
}
