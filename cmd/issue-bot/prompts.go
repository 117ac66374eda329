/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/nova-labs/automation/promptbuilder"

// triagePrompt asks the model for a short, actionable take on a new issue.
var triagePrompt = promptbuilder.MustNewPrompt(`A new issue was opened in {{repository}}.

Title: {{title}}

Body:
{{body}}

Write a short triage summary for the maintainers:
1. Restate the problem in one or two sentences.
2. Suggest a likely area of the codebase or category (bug, feature request, question, docs).
3. List any information the reporter should add, if the issue is missing details.

Be concise. Respond in markdown.`)

// buildTriagePrompt binds the issue fields into the triage template.
func buildTriagePrompt(repository, title, body string) (string, error) {
	if body == "" {
		body = "(no description provided)"
	}
	bound, err := triagePrompt.BindText("repository", repository)
	if err != nil {
		return "", err
	}
	if bound, err = bound.BindText("title", title); err != nil {
		return "", err
	}
	if bound, err = bound.BindText("body", body); err != nil {
		return "", err
	}
	return bound.Build()
}
