/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package inference wraps the hosted Claude text-generation endpoint behind
// a small synchronous client. A request is a single user message; the
// response is the model's text content, trimmed. There is no streaming, no
// multi-turn state, and deliberately no retry policy: callers treat any
// transport or parse failure as fatal.
//
// The client can talk to the Anthropic API directly or to the same models
// hosted on Amazon Bedrock, selected by the Config.
package inference
