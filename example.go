// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"bytes"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll fills every declared property.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired fills required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode selects which properties a scaffold contains.
type ExampleMode string

const (
	// ExampleFormatJSON encodes scaffold as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes scaffold as commented YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat selects scaffold encoding.
type ExampleFormat string

// scalarPlaceholders are used when a schema gives no default, example, const or enum.
var scalarPlaceholders = map[string]any{
	"string":  "<string>",
	"number":  0,
	"integer": 0,
	"boolean": false,
	"null":    nil,
}

// scaffoldBuilder walks a schema tree and produces a skeleton business case.
type scaffoldBuilder struct {
	activeRefs map[string]int
	mode       ExampleMode
	tree       schemaTree
}

// GenerateExample builds a skeleton document from schema bytes in the selected
// mode and format. It is meant as a starting point for a new business case.
func GenerateExample(schemaBytes []byte, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	format, err := normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	builder, err := newScaffoldBuilder(schemaBytes, mode)
	if err != nil {
		return nil, err
	}

	value := builder.build(builder.tree.Root)

	if format == ExampleFormatJSON {
		data, err := marshalIndented(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
		}

		return data, nil
	}

	node, err := yamlNodeForValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	builder.annotate(node, builder.tree.Root)

	data, err := marshalYAMLNode(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
	}

	return data, nil
}

func newScaffoldBuilder(schemaBytes []byte, mode ExampleMode) (*scaffoldBuilder, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	tree, err := parseSchemaTree(schemaBytes)
	if err != nil {
		return nil, err
	}

	return &scaffoldBuilder{
		tree:       tree,
		mode:       mode,
		activeRefs: make(map[string]int),
	}, nil
}

// normalizeExampleMode validates mode; empty means all.
func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

// normalizeExampleFormat validates format; empty means JSON.
func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return ExampleFormatJSON, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// build returns example value for one schema node.
func (builder *scaffoldBuilder) build(node schemaValue) any {
	object, release := builder.resolve(node)
	if release != nil {
		defer release()
	}

	if object == nil {
		return nil
	}

	schemaType := schemaTypeName(object)
	properties := nodeProperties(schemaValue{Object: object})
	required := asStringSlice(object["required"])

	if schemaType == "object" || len(properties) > 0 {
		return builder.buildObject(properties, required)
	}

	if value, ok := explicitValue(object); ok {
		return value
	}

	if schemaType == "array" {
		if item, ok := toSchemaValue(object["items"]); ok {
			return []any{builder.build(item)}
		}

		return []any{}
	}

	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		for _, raw := range asSlice(object[keyword]) {
			if item, ok := toSchemaValue(raw); ok {
				return builder.build(item)
			}
		}
	}

	return scalarPlaceholders[schemaType]
}

// buildObject fills properties according to builder mode.
func (builder *scaffoldBuilder) buildObject(properties map[string]schemaValue, required []string) map[string]any {
	out := make(map[string]any, len(properties))
	for _, key := range propertyOrder(required, properties) {
		if builder.mode == ExampleModeRequired && !containsString(required, key) {
			continue
		}

		out[key] = builder.build(properties[key])
	}

	return out
}

// resolve expands a local $ref once per path; recursive refs resolve to nil.
func (builder *scaffoldBuilder) resolve(node schemaValue) (map[string]any, func()) {
	if node.Object == nil {
		return nil, nil
	}

	ref := asString(node.Object["$ref"])
	if ref == "" {
		return node.Object, nil
	}

	if builder.activeRefs[ref] > 0 {
		return nil, nil
	}

	raw, ok := resolveJSONPointer(builder.tree.Raw, ref)
	if !ok {
		return withoutRef(node.Object), nil
	}

	target, ok := raw.(map[string]any)
	if !ok {
		return withoutRef(node.Object), nil
	}

	builder.activeRefs[ref]++
	release := func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}

	merged := make(map[string]any, len(target)+len(node.Object))
	maps.Copy(merged, target)
	maps.Copy(merged, withoutRef(node.Object))

	return merged, release
}

// annotate copies schema title/description onto YAML keys as head comments.
func (builder *scaffoldBuilder) annotate(node *yaml.Node, schema schemaValue) {
	object, release := builder.resolve(schema)
	if release != nil {
		defer release()
	}

	if object == nil {
		return
	}

	switch node.Kind {
	case yaml.MappingNode:
		properties := nodeProperties(schemaValue{Object: object})
		for index := 0; index+1 < len(node.Content); index += 2 {
			property, ok := properties[node.Content[index].Value]
			if !ok {
				continue
			}

			if comment := keyComment(property); comment != "" {
				node.Content[index].HeadComment = comment
			}

			builder.annotate(node.Content[index+1], property)
		}
	case yaml.SequenceNode:
		item, ok := toSchemaValue(object["items"])
		if !ok {
			return
		}

		for _, child := range node.Content {
			builder.annotate(child, item)
		}
	}
}

// keyComment joins schema title and description into one comment.
func keyComment(schema schemaValue) string {
	if schema.Object == nil {
		return ""
	}

	title := asString(schema.Object["title"])
	description := asString(schema.Object["description"])

	switch {
	case title == "":
		return description
	case description == "", title == description:
		return title
	default:
		return title + "\n" + description
	}
}

// schemaTypeName returns first non-null "type" value.
func schemaTypeName(object map[string]any) string {
	if text := strings.ToLower(asString(object["type"])); text != "" {
		return text
	}

	fallback := ""
	for _, item := range asSlice(object["type"]) {
		text := strings.ToLower(asString(item))
		if text == "null" {
			fallback = text
			continue
		}

		if text != "" {
			return text
		}
	}

	return fallback
}

// explicitValue picks default, first example, const or first enum value.
func explicitValue(object map[string]any) (any, bool) {
	if value, ok := object["default"]; ok {
		return cloneJSONValue(value), true
	}

	if values := asSlice(object["examples"]); len(values) > 0 {
		return cloneJSONValue(values[0]), true
	}

	if value, ok := object["const"]; ok {
		return cloneJSONValue(value), true
	}

	if values := asSlice(object["enum"]); len(values) > 0 {
		return cloneJSONValue(values[0]), true
	}

	return nil, false
}

func withoutRef(object map[string]any) map[string]any {
	out := make(map[string]any, len(object))
	for key, value := range object {
		if key != "$ref" {
			out[key] = value
		}
	}

	return out
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}

	return false
}

// cloneJSONValue deep-copies maps and slices.
func cloneJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneJSONValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneJSONValue(item))
		}

		return out
	default:
		return typed
	}
}

// yamlNodeForValue builds a yaml.Node tree with sorted mapping keys.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil
	case string:
		return yamlScalarNode("!!str", typed), nil
	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil
	case float64:
		if typed == float64(int64(typed)) {
			return yamlScalarNode("!!int", strconv.FormatInt(int64(typed), 10)), nil
		}

		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range sortedKeys(typed) {
			child, err := yamlNodeForValue(typed[key])
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, yamlScalarNode("!!str", key), child)
		}

		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			child, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, child)
		}

		return node, nil
	default:
		data, err := json.Marshal(typed)
		if err != nil {
			return nil, err
		}

		var normalized any
		if err := json.Unmarshal(data, &normalized); err != nil {
			return nil, err
		}

		return yamlNodeForValue(normalized)
	}
}

func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// marshalYAMLNode encodes node as a YAML document with two-space indent.
func marshalYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{node}}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
