/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// backupDirName is where pre-edit copies of files are kept, relative to the
// repository root.
const backupDirName = ".claude_backups"

// editorInput is the text_editor tool's input payload. The schema sent to
// the model is reflected from this struct.
type editorInput struct {
	Command    string `json:"command" jsonschema:"required,enum=view,enum=str_replace,enum=create,enum=insert" jsonschema_description:"The edit operation to perform."`
	Path       string `json:"path" jsonschema:"required" jsonschema_description:"Path to the file or directory, relative to the repository root."`
	ViewRange  []int  `json:"view_range,omitempty" jsonschema_description:"Optional [start, end] line range for view; end of -1 means end of file."`
	OldStr     string `json:"old_str,omitempty" jsonschema_description:"Exact text to replace for str_replace; must occur exactly once."`
	NewStr     string `json:"new_str,omitempty" jsonschema_description:"Replacement text for str_replace, or the text to insert for insert."`
	FileText   string `json:"file_text,omitempty" jsonschema_description:"Full contents of the file for create."`
	InsertLine int    `json:"insert_line,omitempty" jsonschema_description:"Line after which to insert for insert; 0 inserts at the beginning."`
}

// Editor applies text_editor commands inside a repository root. All paths
// are validated against the root so the model cannot reach outside it.
// Editor is not safe for concurrent use.
type Editor struct {
	root  string
	edits map[string]int
}

// NewEditor constructs an Editor rooted at root and ensures the backup
// directory exists.
func NewEditor(root string) (*Editor, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("checking root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}
	if err := os.MkdirAll(filepath.Join(abs, backupDirName), 0o755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}
	return &Editor{root: abs, edits: map[string]int{}}, nil
}

// EditCounts returns how many edits were applied per file, keyed by the
// path the model supplied.
func (e *Editor) EditCounts() map[string]int {
	out := make(map[string]int, len(e.edits))
	for k, v := range e.edits {
		out[k] = v
	}
	return out
}

// Handle executes one tool command. Failures are reported back to the model
// as an "error" entry rather than a Go error; only the model can decide how
// to proceed.
func (e *Editor) Handle(in editorInput) map[string]any {
	full, err := e.resolve(in.Path)
	if err != nil {
		return toolError("invalid file path: %v", err)
	}

	switch in.Command {
	case "view":
		return e.view(full, in.ViewRange)
	case "str_replace":
		return e.strReplace(full, in.Path, in.OldStr, in.NewStr)
	case "create":
		return e.create(full, in.Path, in.FileText)
	case "insert":
		return e.insert(full, in.Path, in.InsertLine, in.NewStr)
	default:
		return toolError("unknown command: %q", in.Command)
	}
}

// resolve joins path with the root and rejects anything that escapes it.
func (e *Editor) resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	full := filepath.Join(e.root, path)
	if full != e.root && !strings.HasPrefix(full, e.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the repository root", path)
	}
	return full, nil
}

func (e *Editor) view(full string, viewRange []int) map[string]any {
	info, err := os.Stat(full)
	if err != nil {
		return toolError("file not found: %s", full)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(full)
		if err != nil {
			return toolError("listing directory: %v", err)
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		return map[string]any{"content": strings.Join(names, "\n")}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return toolError("reading file: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")

	start, end := 1, len(lines)
	if len(viewRange) == 2 {
		if viewRange[0] > 1 {
			start = viewRange[0]
		}
		if viewRange[1] != -1 && viewRange[1] < end {
			end = viewRange[1]
		}
	}
	if start > len(lines) {
		return map[string]any{"content": ""}
	}

	var sb strings.Builder
	for i := start; i <= end; i++ {
		fmt.Fprintf(&sb, "%d: %s\n", i, lines[i-1])
	}
	return map[string]any{"content": strings.TrimSuffix(sb.String(), "\n")}
}

func (e *Editor) strReplace(full, path, oldStr, newStr string) map[string]any {
	if oldStr == "" {
		return toolError("old_str cannot be empty")
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return toolError("file not found: %s", full)
	}
	content := string(data)

	switch n := strings.Count(content, oldStr); {
	case n == 0:
		return toolError("text to replace not found")
	case n > 1:
		return toolError("multiple matches found (%d), provide more specific text", n)
	}

	if err := e.backup(full); err != nil {
		return toolError("backing up file: %v", err)
	}
	if err := os.WriteFile(full, []byte(strings.Replace(content, oldStr, newStr, 1)), 0o644); err != nil {
		return toolError("writing file: %v", err)
	}
	e.edits[path]++
	return map[string]any{"content": "Successfully replaced text at exactly one location."}
}

func (e *Editor) create(full, path, fileText string) map[string]any {
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return toolError("creating parent directory: %v", err)
	}
	if err := os.WriteFile(full, []byte(fileText), 0o644); err != nil {
		return toolError("creating file: %v", err)
	}
	e.edits[path]++
	return map[string]any{"content": fmt.Sprintf("Successfully created file: %s", path)}
}

func (e *Editor) insert(full, path string, insertLine int, newStr string) map[string]any {
	data, err := os.ReadFile(full)
	if err != nil {
		return toolError("file not found: %s", full)
	}
	if err := e.backup(full); err != nil {
		return toolError("backing up file: %v", err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	pos := insertLine
	if pos > len(lines) {
		pos = len(lines)
	}
	if pos < 0 {
		pos = 0
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:pos]...)
	out = append(out, newStr+"\n")
	out = append(out, lines[pos:]...)

	if err := os.WriteFile(full, []byte(strings.Join(out, "")), 0o644); err != nil {
		return toolError("writing file: %v", err)
	}
	e.edits[path]++
	return map[string]any{"content": fmt.Sprintf("Successfully inserted text at line %d", insertLine)}
}

// backup copies the file into the backup directory before it is modified.
// The copy is keyed by basename, so repeated edits keep only the most
// recent pre-edit state.
func (e *Editor) backup(full string) error {
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	backupPath := filepath.Join(e.root, backupDirName, filepath.Base(full)+".backup")
	return os.WriteFile(backupPath, data, 0o644)
}

// toolError formats an error result for the model.
func toolError(format string, args ...any) map[string]any {
	return map[string]any{
		"error": fmt.Sprintf(format, args...),
	}
}
