/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package gitops wraps the go-git operations the documentation agent needs:
// pulling the default branch of an existing local clone, detecting which
// files changed, and creating, committing, and pushing a documentation
// branch.
package gitops
