// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// schemaValue is one schema node: either boolean schema or keyword object.
type schemaValue struct {
	Bool   *bool
	Object map[string]any
}

// schemaTree is a decoded schema document used for scaffolding.
type schemaTree struct {
	Raw  map[string]any
	Root schemaValue
}

// parseSchemaTree decodes schema bytes into a walkable tree.
func parseSchemaTree(data []byte) (schemaTree, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return schemaTree{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	root, ok := toSchemaValue(raw)
	if !ok {
		return schemaTree{}, fmt.Errorf("%w: root must be object or boolean", ErrDecodeSchema)
	}

	tree := schemaTree{Root: root}
	if root.Object != nil {
		tree.Raw = root.Object
	}

	return tree, nil
}

// toSchemaValue converts raw JSON value into schema node.
func toSchemaValue(raw any) (schemaValue, bool) {
	switch typed := raw.(type) {
	case bool:
		return schemaValue{Bool: &typed}, true
	case map[string]any:
		return schemaValue{Object: typed}, true
	default:
		return schemaValue{}, false
	}
}

// nodeProperties returns "properties" keyword as schema nodes.
func nodeProperties(node schemaValue) map[string]schemaValue {
	if node.Object == nil {
		return nil
	}

	return mapSchemaValues(node.Object["properties"])
}

// mapSchemaValues converts object of raw schemas into schema nodes.
func mapSchemaValues(raw any) map[string]schemaValue {
	object, ok := raw.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}

	out := make(map[string]schemaValue, len(object))
	for key, value := range object {
		node, ok := toSchemaValue(value)
		if !ok {
			continue
		}

		out[key] = node
	}

	return out
}

// propertyOrder lists required properties first in declared order, then the rest sorted.
func propertyOrder(required []string, properties map[string]schemaValue) []string {
	out := make([]string, 0, len(properties))
	seen := make(map[string]struct{}, len(properties))

	for _, key := range required {
		if _, exists := properties[key]; !exists {
			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, key)
	}

	rest := make([]string, 0, len(properties))
	for key := range properties {
		if _, exists := seen[key]; exists {
			continue
		}

		rest = append(rest, key)
	}

	sort.Strings(rest)
	return append(out, rest...)
}

// sortedKeys returns map keys in lexical order.
func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// asSlice returns value as JSON array or nil.
func asSlice(value any) []any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	return items
}

// asString returns trimmed string value or empty string.
func asString(value any) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(text)
}

// asStringSlice returns string items of a JSON array.
func asStringSlice(value any) []string {
	items := asSlice(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if text := asString(item); text != "" {
			out = append(out, text)
		}
	}

	return out
}

// resolveJSONPointer resolves a local "#/..." reference against root document value.
func resolveJSONPointer(root any, ref string) (any, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "#" {
		return root, true
	}

	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	current := root
	for token := range strings.SplitSeq(strings.TrimPrefix(ref, "#/"), "/") {
		token = decodeJSONPointerToken(token)

		switch typed := current.(type) {
		case map[string]any:
			next, exists := typed[token]
			if !exists {
				return nil, false
			}

			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(typed) {
				return nil, false
			}

			current = typed[index]
		default:
			return nil, false
		}
	}

	return current, true
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
