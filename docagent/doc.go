/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package docagent runs a Claude conversation that improves documentation in
// a local repository. The model drives a single text_editor tool whose edits
// are confined to the repository root; the conversation ends when the model
// stops calling tools or the turn budget runs out.
package docagent
