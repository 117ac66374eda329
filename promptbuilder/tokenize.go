/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// lookupFunc supplies the replacement text for a placeholder name.
type lookupFunc func(name string) (string, error)

// expand walks the template and substitutes every {{name}} placeholder using
// lookup. The same walk is used for parsing and for building, so the two
// phases can never disagree about what counts as a placeholder.
func expand(template string, lookup lookupFunc) (string, error) {
	var out strings.Builder

	for len(template) > 0 {
		start := strings.Index(template, "{{")
		if start == -1 {
			out.WriteString(template)
			break
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed placeholder: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !validName(name) {
			return "", fmt.Errorf("invalid placeholder name %q", name)
		}

		replacement, err := lookup(name)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)

		template = template[end:]
	}

	return out.String(), nil
}

// validName reports whether s is a legal placeholder name: a letter followed
// by letters, digits, or underscores.
func validName(s string) bool {
	if len(s) == 0 {
		return false
	}
	runes := []rune(s)
	if !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
