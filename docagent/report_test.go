/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import (
	"strings"
	"testing"
)

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	err := WriteSummary(&sb, map[string]int{
		"pkg/util.go": 3,
		"README.md":   1,
	})
	if err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := sb.String()
	for _, want := range []string{"File", "Edits", "pkg/util.go", "3", "README.md", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary: wanted to contain %q, got:\n%s", want, out)
		}
	}

	// Rows are sorted by file name.
	if strings.Index(out, "README.md") > strings.Index(out, "pkg/util.go") {
		t.Errorf("summary rows not sorted:\n%s", out)
	}
}
