/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// slot holds the value that replaces one placeholder at Build time.
type slot interface {
	value() (string, error)
}

// emptySlot is the parsed-but-unbound state; building it is an error.
type emptySlot struct {
	name string
}

func (e *emptySlot) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", e.name)
}

// textSlot interpolates a plain string verbatim.
type textSlot struct {
	val string
}

func (t *textSlot) value() (string, error) {
	return t.val, nil
}

// jsonSlot renders structured data as indented JSON.
type jsonSlot struct {
	data any
}

func (j *jsonSlot) value() (string, error) {
	b, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return string(b), nil
}

// yamlSlot renders structured data as YAML.
type yamlSlot struct {
	data any
}

func (y *yamlSlot) value() (string, error) {
	b, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return string(b), nil
}
