/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/chainguard-dev/clog"
)

// Config carries everything needed to construct a Client. It is passed
// explicitly so entry points own client construction and tests can skip it
// entirely by substituting a fake for the TextGenerator interface.
type Config struct {
	// Model is the model identifier to invoke. For Bedrock this is an
	// inference profile ID (e.g. "eu.anthropic.claude-3-5-sonnet-20240620-v1:0").
	Model string

	// MaxTokens bounds the generated output.
	MaxTokens int64

	// UseBedrock selects the Amazon Bedrock transport. When false the
	// Anthropic API is used directly with APIKey.
	UseBedrock bool

	// Region is the AWS region for Bedrock requests.
	Region string

	// APIKey authenticates direct Anthropic API requests. Ignored when
	// UseBedrock is set.
	APIKey string
}

// TextGenerator is the narrow surface consumers depend on.
type TextGenerator interface {
	// Generate sends prompt as the sole user message and returns the
	// model's text response with surrounding whitespace trimmed.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a TextGenerator backed by the Anthropic SDK.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New constructs a Client from the given configuration.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("model identifier cannot be empty")
	}
	if cfg.MaxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", cfg.MaxTokens)
	}

	var opts []option.RequestOption
	if cfg.UseBedrock {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("loading AWS configuration: %w", err)
		}
		opts = append(opts, bedrock.WithConfig(awsCfg))
	} else {
		if cfg.APIKey == "" {
			return nil, errors.New("API key required when not using Bedrock")
		}
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &Client{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Generate implements TextGenerator with a single synchronous exchange.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)
	log.With("model", c.model).
		With("prompt_length", len(prompt)).
		Info("Requesting text generation")

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("invoking model %s: %w", c.model, err)
	}

	text, err := textContent(message)
	if err != nil {
		return "", err
	}

	log.With("response_length", len(text)).Info("Received model response")
	return text, nil
}

// SendMessage sends a raw message exchange, for callers that manage their
// own conversation state and tools. The client's model and token bound are
// applied when params leaves them unset.
func (c *Client) SendMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if params.Model == "" {
		params.Model = anthropic.Model(c.model)
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = c.maxTokens
	}
	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("invoking model %s: %w", params.Model, err)
	}
	return message, nil
}

// textContent pulls the text payload out of a structured message response.
func textContent(message *anthropic.Message) (string, error) {
	var out strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("no text content in model response")
	}
	return text, nil
}
