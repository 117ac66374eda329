/*
Copyright 2026 Nova Labs, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package docagent

import (
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
	"github.com/invopop/jsonschema"
)

const editorToolName = "text_editor"

// editorTool builds the text_editor tool definition. The input schema is
// reflected from editorInput so the struct stays the single source of truth.
func editorTool() (anthropic.ToolParam, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
	}

	raw, err := schemaToMap(reflector.Reflect(&editorInput{}))
	if err != nil {
		return anthropic.ToolParam{}, fmt.Errorf("reflecting editor schema: %w", err)
	}

	properties, ok := raw["properties"].(map[string]any)
	if !ok {
		return anthropic.ToolParam{}, fmt.Errorf("editor schema has no properties")
	}
	var required []string
	if rawRequired, ok := raw["required"].([]any); ok {
		for _, r := range rawRequired {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
	}

	return anthropic.ToolParam{
		Name:        editorToolName,
		Description: anthropic.String("View, create, and edit text files in the repository. Edits are restricted to the repository root."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       constant.Object("object"),
			Properties: properties,
			Required:   required,
		},
	}, nil
}

func schemaToMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
