/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package inference

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing model", func(t *testing.T) {
		if _, err := New(ctx, Config{MaxTokens: 2000, APIKey: "key"}); err == nil {
			t.Error("New() error = nil, wanted missing-model error")
		}
	})

	t.Run("non-positive max tokens", func(t *testing.T) {
		if _, err := New(ctx, Config{Model: "claude-3-5-sonnet-20241022", APIKey: "key"}); err == nil {
			t.Error("New() error = nil, wanted max-tokens error")
		}
	})

	t.Run("missing API key without bedrock", func(t *testing.T) {
		if _, err := New(ctx, Config{Model: "claude-3-5-sonnet-20241022", MaxTokens: 2000}); err == nil {
			t.Error("New() error = nil, wanted missing-key error")
		}
	})

	t.Run("direct API", func(t *testing.T) {
		c, err := New(ctx, Config{Model: "claude-3-5-sonnet-20241022", MaxTokens: 2000, APIKey: "key"})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c.model != "claude-3-5-sonnet-20241022" {
			t.Errorf("model: got = %q, wanted = %q", c.model, "claude-3-5-sonnet-20241022")
		}
	})
}

func TestTextContent(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		msg := &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{{Type: "text", Text: "  diagnosis text\n\n"}},
		}
		got, err := textContent(msg)
		if err != nil {
			t.Fatalf("textContent() error = %v", err)
		}
		if wanted := "diagnosis text"; got != wanted {
			t.Errorf("textContent(): got = %q, wanted = %q", got, wanted)
		}
	})

	t.Run("concatenates text blocks", func(t *testing.T) {
		msg := &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: "part one "},
				{Type: "text", Text: "part two"},
			},
		}
		got, err := textContent(msg)
		if err != nil {
			t.Fatalf("textContent() error = %v", err)
		}
		if wanted := "part one part two"; got != wanted {
			t.Errorf("textContent(): got = %q, wanted = %q", got, wanted)
		}
	})

	t.Run("no text content", func(t *testing.T) {
		msg := &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{{Type: "tool_use"}},
		}
		if _, err := textContent(msg); err == nil {
			t.Error("textContent() error = nil, wanted no-content error")
		}
	})
}
