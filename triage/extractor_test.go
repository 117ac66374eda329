/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package triage

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIsSalient(t *testing.T) {
	tests := []struct {
		line   string
		wanted bool
	}{
		{"INFO: build error: disk full", true},
		{"INFO: build complete", false},
		{"Error: module not found", true},
		{"2 tests FAILED", true},
		{"ERROR connecting to registry", true},
		{"FAILURE in step compile", true},
		// Case-sensitive: lowercase "failed" and bare "error" without a
		// colon do not match any marker.
		{"step failed with code 1", false},
		{"an error occurred", false},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			if got := isSalient(tc.line); got != tc.wanted {
				t.Errorf("isSalient(%q): got = %v, wanted = %v", tc.line, got, tc.wanted)
			}
		})
	}
}

func TestSalientLines(t *testing.T) {
	t.Run("keeps last 10 in original order", func(t *testing.T) {
		var lines []string
		for i := 1; i <= 15; i++ {
			lines = append(lines, fmt.Sprintf("Error number %d", i))
			lines = append(lines, fmt.Sprintf("unrelated chatter %d", i))
		}
		got := salientLines(strings.Join(lines, "\n"))

		var wanted []string
		for i := 6; i <= 15; i++ {
			wanted = append(wanted, fmt.Sprintf("Error number %d", i))
		}
		if diff := cmp.Diff(wanted, got); diff != "" {
			t.Errorf("salientLines() mismatch (-wanted +got):\n%s", diff)
		}
	})

	t.Run("fewer than 10 matches kept as-is", func(t *testing.T) {
		got := salientLines("ok\nError: one\nok\nFAILED: two\nok")
		wanted := []string{"Error: one", "FAILED: two"}
		if diff := cmp.Diff(wanted, got); diff != "" {
			t.Errorf("salientLines() mismatch (-wanted +got):\n%s", diff)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		if got := salientLines("all good\nnothing to see"); len(got) != 0 {
			t.Errorf("salientLines(): got = %v, wanted = empty", got)
		}
	})
}

func TestSection(t *testing.T) {
	job := JobRecord{
		Name:        "build",
		Conclusion:  "failure",
		StartedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
	}

	t.Run("with matched lines", func(t *testing.T) {
		got := (LogExcerpt{Job: job, Lines: []string{"Error: module not found"}}).section()
		for _, want := range []string{
			"### Job: build",
			"Conclusion: failure",
			"2026-03-01T12:00:00Z",
			"2026-03-01T12:05:00Z",
			"Error: module not found",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("section(): wanted to contain %q, got:\n%s", want, got)
			}
		}
	})

	t.Run("degraded", func(t *testing.T) {
		got := (LogExcerpt{Job: job, Degraded: true}).section()
		if !strings.Contains(got, "Could not fetch detailed logs") {
			t.Errorf("section(): wanted degraded notice, got:\n%s", got)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		got := (LogExcerpt{Job: job}).section()
		if strings.Contains(got, "```") {
			t.Errorf("section(): wanted no log block, got:\n%s", got)
		}
	})
}

func TestAggregateOrder(t *testing.T) {
	excerpts := []LogExcerpt{
		{Job: JobRecord{Name: "first"}},
		{Job: JobRecord{Name: "second"}},
		{Job: JobRecord{Name: "third"}},
	}
	got := aggregate(excerpts)
	iFirst := strings.Index(got, "### Job: first")
	iSecond := strings.Index(got, "### Job: second")
	iThird := strings.Index(got, "### Job: third")
	if iFirst == -1 || iSecond == -1 || iThird == -1 {
		t.Fatalf("aggregate(): missing sections in:\n%s", got)
	}
	if !(iFirst < iSecond && iSecond < iThird) {
		t.Errorf("aggregate(): section order = %d,%d,%d, wanted ascending", iFirst, iSecond, iThird)
	}
}
