/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package gitops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// shortSHALen is the abbreviated hash length used in branch names and logs.
const shortSHALen = 8

// Repo wraps an existing local clone. All operations act on the clone's
// single worktree; callers serialize access.
type Repo struct {
	repo     *git.Repository
	auth     *githttp.BasicAuth
	identity string
}

// Open opens the clone rooted at path. The token authenticates fetches and
// pushes to origin; it may be empty for purely local repositories. Identity
// becomes the commit author (suffixed with @users.noreply.github.com when it
// lacks a domain).
func Open(path, token, identity string) (*Repo, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, errors.New("identity cannot be empty")
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repo at %s: %w", path, err)
	}

	r := &Repo{repo: repo, identity: identity}
	if token != "" {
		r.auth = &githttp.BasicAuth{
			Username: "unused-when-using-access-tokens",
			Password: token,
		}
	}
	return r, nil
}

// Head returns the hash of the currently checked-out commit.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Pull fast-forwards the current branch from origin and returns the files
// that changed between the old and new HEAD. An already-up-to-date pull
// returns an empty list.
func (r *Repo) Pull(ctx context.Context) ([]string, error) {
	log := clog.FromContext(ctx)

	before, err := r.Head()
	if err != nil {
		return nil, err
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Auth:       r.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		log.Info("Already up to date")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pulling: %w", err)
	}

	after, err := r.Head()
	if err != nil {
		return nil, err
	}

	changed, err := r.ChangedFiles(before, after)
	if err != nil {
		return nil, err
	}
	log.With("before", ShortSHA(before)).
		With("after", ShortSHA(after)).
		With("files", len(changed)).
		Info("Pulled new commits")
	return changed, nil
}

// ChangedFiles lists the paths that differ between two commits.
func (r *Repo) ChangedFiles(oldSHA, newSHA string) ([]string, error) {
	oldTree, err := r.commitTree(oldSHA)
	if err != nil {
		return nil, err
	}
	newTree, err := r.commitTree(newSHA)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(oldTree, newTree)
	if err != nil {
		return nil, fmt.Errorf("diffing %s..%s: %w", ShortSHA(oldSHA), ShortSHA(newSHA), err)
	}

	var files []string
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		files = append(files, name)
	}
	return files, nil
}

func (r *Repo) commitTree(sha string) (*object.Tree, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("getting commit %s: %w", ShortSHA(sha), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree for %s: %w", ShortSHA(sha), err)
	}
	return tree, nil
}

// CreateBranch creates name at the current HEAD and checks it out.
func (r *Repo) CreateBranch(name string) error {
	if name == "" {
		return errors.New("branch name cannot be empty")
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}

	refName := plumbing.NewBranchReferenceName(name)
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash())); err != nil {
		return fmt.Errorf("setting branch reference: %w", err)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Branch: refName}); err != nil {
		return fmt.Errorf("checking out %s: %w", name, err)
	}
	return nil
}

// CommitAll stages every change in the worktree and commits it, returning
// the new commit hash.
func (r *Repo) CommitAll(message string) (string, error) {
	if message == "" {
		return "", errors.New("commit message cannot be empty")
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging changes: %w", err)
	}

	email := r.identity
	if !strings.Contains(email, "@") {
		email = fmt.Sprintf("%s@users.noreply.github.com", email)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.identity,
			Email: email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

// Push pushes the named branch to origin.
func (r *Repo) Push(ctx context.Context, branch string) error {
	log := clog.FromContext(ctx)

	refName := plumbing.NewBranchReferenceName(branch)
	refSpec := gitconfig.RefSpec(fmt.Sprintf("%s:%s", refName, refName))
	log.Infof("Pushing %s", refSpec)

	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		Auth:       r.auth,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		log.Info("Branch already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing %s: %w", branch, err)
	}
	return nil
}

// ShortSHA abbreviates a commit hash for branch names and log lines.
func ShortSHA(sha string) string {
	if len(sha) <= shortSHALen {
		return sha
	}
	return sha[:shortSHALen]
}

// DocBranch names the branch that carries documentation edits for the
// given commit.
func DocBranch(sha string) string {
	return "documentation-" + ShortSHA(sha)
}
