/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gitops

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/go-cmp/cmp"
)

// initRepo creates a repository with one initial commit and returns its path.
func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}
	commitFile(t, repo, dir, "README.md", "# readme\n", "initial commit")
	return dir, repo
}

// commitFile writes path under dir and commits it.
func commitFile(t *testing.T, repo *git.Repository, dir, path, content, message string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree() error = %v", err)
	}
	if _, err := worktree.Add(path); err != nil {
		t.Fatalf("Add(%q) error = %v", path, err)
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	return hash.String()
}

func TestOpen(t *testing.T) {
	dir, _ := initRepo(t)

	t.Run("valid", func(t *testing.T) {
		if _, err := Open(dir, "", "doc-agent"); err != nil {
			t.Errorf("Open() error = %v, wanted nil", err)
		}
	})

	t.Run("empty identity", func(t *testing.T) {
		if _, err := Open(dir, "", "  "); err == nil {
			t.Error("Open() error = nil, wanted identity error")
		}
	})

	t.Run("not a repository", func(t *testing.T) {
		if _, err := Open(t.TempDir(), "", "doc-agent"); err == nil {
			t.Error("Open() error = nil, wanted open error")
		}
	})
}

func TestChangedFiles(t *testing.T) {
	dir, repo := initRepo(t)
	r, err := Open(dir, "", "doc-agent")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	before, err := r.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}

	commitFile(t, repo, dir, "pkg/thing.go", "package pkg\n", "add thing")
	after := commitFile(t, repo, dir, "README.md", "# readme v2\n", "update readme")

	got, err := r.ChangedFiles(before, after)
	if err != nil {
		t.Fatalf("ChangedFiles() error = %v", err)
	}
	sort.Strings(got)
	wanted := []string{"README.md", "pkg/thing.go"}
	if diff := cmp.Diff(wanted, got); diff != "" {
		t.Errorf("ChangedFiles() mismatch (-wanted +got):\n%s", diff)
	}
}

func TestCreateBranchAndCommitAll(t *testing.T) {
	dir, repo := initRepo(t)
	r, err := Open(dir, "", "doc-agent")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	branch := DocBranch(head)
	if err := r.CreateBranch(branch); err != nil {
		t.Fatalf("CreateBranch(%q) error = %v", branch, err)
	}

	ref, err := repo.Head()
	if err != nil {
		t.Fatalf("repo.Head() error = %v", err)
	}
	if got, wanted := ref.Name().Short(), branch; got != wanted {
		t.Errorf("checked-out branch: got = %q, wanted = %q", got, wanted)
	}

	if err := os.WriteFile(filepath.Join(dir, "docs.md"), []byte("docs\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	sha, err := r.CommitAll("docs: describe the thing")
	if err != nil {
		t.Fatalf("CommitAll() error = %v", err)
	}
	if sha == head {
		t.Error("CommitAll() did not advance HEAD")
	}

	changed, err := r.ChangedFiles(head, sha)
	if err != nil {
		t.Fatalf("ChangedFiles() error = %v", err)
	}
	if diff := cmp.Diff([]string{"docs.md"}, changed); diff != "" {
		t.Errorf("committed files mismatch (-wanted +got):\n%s", diff)
	}
}

func TestCommitAllEmptyMessage(t *testing.T) {
	dir, _ := initRepo(t)
	r, err := Open(dir, "", "doc-agent")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := r.CommitAll(""); err == nil {
		t.Error("CommitAll() error = nil, wanted message error")
	}
}

func TestPull(t *testing.T) {
	ctx := context.Background()
	srcDir, srcRepo := initRepo(t)

	cloneDir := t.TempDir()
	if _, err := git.PlainClone(cloneDir, false, &git.CloneOptions{URL: srcDir}); err != nil {
		t.Fatalf("PlainClone() error = %v", err)
	}
	r, err := Open(cloneDir, "", "doc-agent")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	t.Run("already up to date", func(t *testing.T) {
		changed, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull() error = %v", err)
		}
		if len(changed) != 0 {
			t.Errorf("changed files: got = %v, wanted = empty", changed)
		}
	})

	t.Run("new upstream commit", func(t *testing.T) {
		commitFile(t, srcRepo, srcDir, "guide.md", "guide\n", "add guide")

		changed, err := r.Pull(ctx)
		if err != nil {
			t.Fatalf("Pull() error = %v", err)
		}
		if diff := cmp.Diff([]string{"guide.md"}, changed); diff != "" {
			t.Errorf("changed files mismatch (-wanted +got):\n%s", diff)
		}
	})
}

func TestShortSHA(t *testing.T) {
	tests := []struct {
		in     string
		wanted string
	}{
		{"0123456789abcdef0123456789abcdef01234567", "01234567"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := ShortSHA(tc.in); got != tc.wanted {
			t.Errorf("ShortSHA(%q): got = %q, wanted = %q", tc.in, got, tc.wanted)
		}
	}
}

func TestDocBranch(t *testing.T) {
	got := DocBranch("0123456789abcdef0123456789abcdef01234567")
	if wanted := "documentation-01234567"; got != wanted {
		t.Errorf("DocBranch(): got = %q, wanted = %q", got, wanted)
	}
}
