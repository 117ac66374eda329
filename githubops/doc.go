/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubops owns GitHub client construction and repository
// identification shared by the automation agents. Clients are built
// explicitly from a token passed in by the entry point; nothing in this
// package reads ambient process state.
package githubops
