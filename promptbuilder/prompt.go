/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// literal only accepts untyped string constants, so templates are forced to
// be declared in source rather than assembled from user input.
type literal string

// Prompt is a template whose placeholders are bound incrementally.
// All Bind methods return a new Prompt; the receiver is never mutated.
type Prompt struct {
	template string
	slots    map[string]slot
}

// NewPrompt parses a template literal and records its placeholders.
func NewPrompt(template literal) (*Prompt, error) {
	slots := make(map[string]slot)

	// Expansion with the identity replacement both validates the template
	// and enumerates the placeholder names.
	tmpl, err := expand(string(template), func(name string) (string, error) {
		if _, ok := slots[name]; !ok {
			slots[name] = &emptySlot{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{template: tmpl, slots: slots}, nil
}

// MustNewPrompt is NewPrompt for package-level template variables; it panics
// on a malformed template.
func MustNewPrompt(template literal) *Prompt {
	return Must(NewPrompt(template))
}

// Must panics when err is non-nil, for use in variable initializations:
//
//	var p = promptbuilder.Must(prompt.BindText("name", value))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns the set of placeholder names found in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.slots))
	for name := range p.slots {
		names[name] = struct{}{}
	}
	return names
}

// BindText binds a plain string value to a placeholder. The value is
// interpolated verbatim, with no quoting or escaping.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	return p.bind(name, &textSlot{val: value})
}

// BindJSON binds structured data to a placeholder as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, &jsonSlot{data: data})
}

// BindYAML binds structured data to a placeholder as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, &yamlSlot{data: data})
}

func (p *Prompt) bind(name string, s slot) (*Prompt, error) {
	existing, ok := p.slots[name]
	if !ok {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, unbound := existing.(*emptySlot); !unbound {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	next := &Prompt{
		template: p.template,
		slots:    maps.Clone(p.slots),
	}
	next.slots[name] = s
	return next, nil
}

// Build renders the final prompt string. It fails if any placeholder remains
// unbound or a bound value cannot be rendered.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.slots))
	for name, s := range p.slots {
		val, err := s.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return expand(p.template, func(name string) (string, error) {
		if val, ok := values[name]; ok {
			return val, nil
		}
		// Unreachable: NewPrompt and Build tokenize identically.
		return "", fmt.Errorf("internal error: placeholder %q has no value", name)
	})
}
