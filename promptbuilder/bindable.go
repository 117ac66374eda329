/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is implemented by request types that know how to bind their own
// fields into a prompt template.
type Bindable interface {
	// Bind returns a new prompt with the receiver's values bound.
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop passes the prompt through unchanged.
type Noop struct{}

// Bind implements Bindable.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}
