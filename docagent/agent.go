/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// MessageSender is the conversation surface the agent depends on. The
// inference client satisfies it; tests substitute fakes.
type MessageSender interface {
	SendMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

// Agent drives a documentation conversation with the model, executing
// text_editor tool calls against a local repository.
type Agent struct {
	sender   MessageSender
	editor   *Editor
	maxTurns int
}

// New constructs an Agent. maxTurns bounds the number of model exchanges in
// one conversation.
func New(sender MessageSender, editor *Editor, maxTurns int) (*Agent, error) {
	if sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if editor == nil {
		return nil, errors.New("editor cannot be nil")
	}
	if maxTurns <= 0 {
		return nil, fmt.Errorf("max turns must be positive, got %d", maxTurns)
	}
	return &Agent{sender: sender, editor: editor, maxTurns: maxTurns}, nil
}

// ProcessFiles asks the model to review the documentation of the given files
// and applies its edits. It returns the model's closing summary.
func (a *Agent) ProcessFiles(ctx context.Context, files []string) (string, error) {
	if len(files) == 0 {
		return "", errors.New("no files to process")
	}
	prompt, err := buildFilesPrompt(files)
	if err != nil {
		return "", fmt.Errorf("building files prompt: %w", err)
	}
	return a.converse(ctx, prompt)
}

// converse runs the conversation loop: send, execute any tool calls, feed
// the results back, repeat until the model answers with text only.
func (a *Agent) converse(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)

	tool, err := editorTool()
	if err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		System: []anthropic.TextBlockParam{{Text: systemPrompt}},
		Tools:  []anthropic.ToolUnionParam{{OfTool: &tool}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	for turn := 1; turn <= a.maxTurns; turn++ {
		message, err := a.sender.SendMessage(ctx, params)
		if err != nil {
			return "", fmt.Errorf("turn %d: %w", turn, err)
		}

		var textContent string
		var toolUses []anthropic.ToolUseBlock
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				textContent = content.Text
			case "tool_use":
				toolUses = append(toolUses, anthropic.ToolUseBlock{
					ID:    content.ID,
					Name:  content.Name,
					Input: content.Input,
				})
			}
		}

		if len(toolUses) == 0 {
			if textContent == "" {
				return "", errors.New("no content in model response")
			}
			log.With("turns", turn).Info("Documentation conversation finished")
			return textContent, nil
		}

		params.Messages = append(params.Messages, message.ToParam())

		var results []anthropic.ContentBlockParamUnion
		for _, toolUse := range toolUses {
			result, err := a.executeToolCall(ctx, toolUse)
			if err != nil {
				return "", err
			}
			results = append(results, result)
		}
		params.Messages = append(params.Messages, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleUser,
			Content: results,
		})
	}

	return "", fmt.Errorf("conversation exceeded %d turns", a.maxTurns)
}

func (a *Agent) executeToolCall(ctx context.Context, toolUse anthropic.ToolUseBlock) (anthropic.ContentBlockParamUnion, error) {
	log := clog.FromContext(ctx)
	log.With("tool", toolUse.Name).
		With("id", toolUse.ID).
		Info("Executing tool call")

	var result map[string]any
	if toolUse.Name != editorToolName {
		result = toolError("unknown tool: %q", toolUse.Name)
	} else {
		var in editorInput
		if err := json.Unmarshal(toolUse.Input, &in); err != nil {
			result = toolError("failed to parse tool input: %v", err)
		} else {
			result = a.editor.Handle(in)
		}
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshaling tool result: %w", err)
	}

	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: toolUse.ID,
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{Text: string(resultBytes)},
			}},
		},
	}, nil
}
