/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestEditor(t *testing.T) (*Editor, string) {
	t.Helper()
	dir := t.TempDir()
	e, err := NewEditor(dir)
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	return e, dir
}

func writeTestFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func readTestFile(t *testing.T, dir, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return string(data)
}

func TestEditorView(t *testing.T) {
	e, dir := newTestEditor(t)
	writeTestFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	t.Run("whole file with line numbers", func(t *testing.T) {
		got := e.Handle(editorInput{Command: "view", Path: "main.go"})
		content, ok := got["content"].(string)
		if !ok {
			t.Fatalf("Handle() = %v, wanted content", got)
		}
		wanted := "1: package main\n2: \n3: func main() {}"
		if content != wanted {
			t.Errorf("content: got = %q, wanted = %q", content, wanted)
		}
	})

	t.Run("line range", func(t *testing.T) {
		got := e.Handle(editorInput{Command: "view", Path: "main.go", ViewRange: []int{3, -1}})
		if content := got["content"]; content != "3: func main() {}" {
			t.Errorf("content: got = %q, wanted = %q", content, "3: func main() {}")
		}
	})

	t.Run("directory listing", func(t *testing.T) {
		writeTestFile(t, dir, "a.txt", "a")
		got := e.Handle(editorInput{Command: "view", Path: "."})
		content, _ := got["content"].(string)
		if !strings.Contains(content, "a.txt") || !strings.Contains(content, "main.go") {
			t.Errorf("content: got = %q, wanted listing with a.txt and main.go", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		got := e.Handle(editorInput{Command: "view", Path: "nope.go"})
		if _, ok := got["error"]; !ok {
			t.Errorf("Handle() = %v, wanted error", got)
		}
	})
}

func TestEditorStrReplace(t *testing.T) {
	e, dir := newTestEditor(t)

	t.Run("single occurrence", func(t *testing.T) {
		writeTestFile(t, dir, "doc.md", "old text here\n")
		got := e.Handle(editorInput{Command: "str_replace", Path: "doc.md", OldStr: "old text", NewStr: "new text"})
		if _, ok := got["error"]; ok {
			t.Fatalf("Handle() = %v, wanted success", got)
		}
		if content := readTestFile(t, dir, "doc.md"); content != "new text here\n" {
			t.Errorf("file content: got = %q, wanted = %q", content, "new text here\n")
		}
	})

	t.Run("backup created before edit", func(t *testing.T) {
		backup := readTestFile(t, dir, filepath.Join(backupDirName, "doc.md.backup"))
		if backup != "old text here\n" {
			t.Errorf("backup content: got = %q, wanted = %q", backup, "old text here\n")
		}
	})

	t.Run("not found", func(t *testing.T) {
		got := e.Handle(editorInput{Command: "str_replace", Path: "doc.md", OldStr: "absent", NewStr: "x"})
		if _, ok := got["error"]; !ok {
			t.Errorf("Handle() = %v, wanted error", got)
		}
	})

	t.Run("multiple matches rejected", func(t *testing.T) {
		writeTestFile(t, dir, "dup.md", "same\nsame\n")
		got := e.Handle(editorInput{Command: "str_replace", Path: "dup.md", OldStr: "same", NewStr: "x"})
		errMsg, ok := got["error"].(string)
		if !ok || !strings.Contains(errMsg, "multiple matches") {
			t.Errorf("Handle() = %v, wanted multiple-matches error", got)
		}
		if content := readTestFile(t, dir, "dup.md"); content != "same\nsame\n" {
			t.Errorf("file was modified: %q", content)
		}
	})
}

func TestEditorCreate(t *testing.T) {
	e, dir := newTestEditor(t)
	got := e.Handle(editorInput{Command: "create", Path: "docs/new.md", FileText: "# New\n"})
	if _, ok := got["error"]; ok {
		t.Fatalf("Handle() = %v, wanted success", got)
	}
	if content := readTestFile(t, dir, "docs/new.md"); content != "# New\n" {
		t.Errorf("file content: got = %q, wanted = %q", content, "# New\n")
	}
}

func TestEditorInsert(t *testing.T) {
	e, dir := newTestEditor(t)
	writeTestFile(t, dir, "list.txt", "one\ntwo\n")

	tests := []struct {
		name   string
		line   int
		wanted string
	}{
		{"at beginning", 0, "zero\none\ntwo\n"},
		{"past end clamps", 99, "one\ntwo\nzero\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			writeTestFile(t, dir, "list.txt", "one\ntwo\n")
			got := e.Handle(editorInput{Command: "insert", Path: "list.txt", InsertLine: tc.line, NewStr: "zero"})
			if _, ok := got["error"]; ok {
				t.Fatalf("Handle() = %v, wanted success", got)
			}
			if content := readTestFile(t, dir, "list.txt"); content != tc.wanted {
				t.Errorf("file content: got = %q, wanted = %q", content, tc.wanted)
			}
		})
	}
}

func TestEditorPathValidation(t *testing.T) {
	e, _ := newTestEditor(t)
	for _, path := range []string{"../outside.txt", "../../etc/passwd", ""} {
		t.Run("path="+path, func(t *testing.T) {
			got := e.Handle(editorInput{Command: "view", Path: path})
			if _, ok := got["error"]; !ok {
				t.Errorf("Handle(%q) = %v, wanted error", path, got)
			}
		})
	}
}

func TestEditorUnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t)
	got := e.Handle(editorInput{Command: "delete", Path: "x.txt"})
	if _, ok := got["error"]; !ok {
		t.Errorf("Handle() = %v, wanted error", got)
	}
}

func TestEditorEditCounts(t *testing.T) {
	e, dir := newTestEditor(t)
	writeTestFile(t, dir, "a.md", "alpha\n")

	e.Handle(editorInput{Command: "str_replace", Path: "a.md", OldStr: "alpha", NewStr: "beta"})
	e.Handle(editorInput{Command: "insert", Path: "a.md", InsertLine: 0, NewStr: "top"})
	e.Handle(editorInput{Command: "create", Path: "b.md", FileText: "b\n"})
	e.Handle(editorInput{Command: "view", Path: "a.md"})

	counts := e.EditCounts()
	if got, wanted := counts["a.md"], 2; got != wanted {
		t.Errorf("edits for a.md: got = %d, wanted = %d", got, wanted)
	}
	if got, wanted := counts["b.md"], 1; got != wanted {
		t.Errorf("edits for b.md: got = %d, wanted = %d", got, wanted)
	}
}
