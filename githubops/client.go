/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubops

import (
	"context"
	"errors"

	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// NewClient constructs a GitHub client authenticated with the given token.
func NewClient(ctx context.Context, token string) (*github.Client, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts)), nil
}
