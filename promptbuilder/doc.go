/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder provides immutable prompt templates with named
// placeholders of the form {{name}}. Templates are declared once as literals,
// values are bound one placeholder at a time, and Build fails if any
// placeholder is still unbound. This keeps every prompt sent to a hosted
// model deterministic given its inputs.
package promptbuilder
