/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import "github.com/nova-labs/automation/promptbuilder"

// systemPrompt restricts the conversation to documentation changes.
const systemPrompt = `You are a documentation assistant. You improve the documentation of
existing code: doc comments, inline comments for non-obvious sections, and
README content. You never modify functional logic, rename identifiers, or
reorder code. Use the text_editor tool for every change. When you are done,
reply with a short summary of the edits you made.`

// filesPrompt asks the model to work through the changed files in order.
var filesPrompt = promptbuilder.MustNewPrompt(`The following files changed recently and need a documentation review:

{{files}}

Examine each file and improve its documentation:
1. Add missing doc comments to exported and complex functions.
2. Add comments for non-obvious code sections.
3. Keep all functional logic exactly as it is.

Work through the files in order, one at a time.`)

// buildFilesPrompt renders the user prompt for a changed-file list.
func buildFilesPrompt(files []string) (string, error) {
	bound, err := filesPrompt.BindJSON("files", files)
	if err != nil {
		return "", err
	}
	return bound.Build()
}
