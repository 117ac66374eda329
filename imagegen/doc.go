/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package imagegen generates images from text prompts with the OpenAI API
// and decodes the base64 payload into raw PNG bytes.
package imagegen
