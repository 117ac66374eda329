/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubops

import (
	"fmt"
	"strings"
)

// Resource identifies a repository under automation.
type Resource struct {
	Owner string
	Repo  string
}

// ParseRepository splits an "owner/repo" identifier, the form GitHub Actions
// supplies in GITHUB_REPOSITORY.
func ParseRepository(s string) (Resource, error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Resource{}, fmt.Errorf("repository %q is not of the form owner/repo", s)
	}
	return Resource{Owner: owner, Repo: repo}, nil
}

// String returns the owner/repo form.
func (r Resource) String() string {
	return r.Owner + "/" + r.Repo
}
