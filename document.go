// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON decodes documents as JSON.
	FormatJSON Format = "json"
	// FormatYAML decodes documents as YAML.
	FormatYAML Format = "yaml"
)

// Format selects document encoding.
type Format string

// Document is a decoded business case: a JSON object tree.
type Document map[string]any

// FormatFromPath picks document format from file extension; JSON is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ReadDocument reads and decodes one business case file.
// The result is the raw JSON value; root shape is checked by the schema, not here.
func ReadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}

	value, err := DecodeDocument(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return value, nil
}

// DecodeDocument decodes document bytes into the JSON value model
// (map[string]any, []any, string, float64, bool, nil).
func DecodeDocument(data []byte, format Format) (any, error) {
	switch format {
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
		}

		return normalizeYAMLValue(raw)
	case FormatJSON, "":
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
		}

		return value, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrDecodeDocument, format)
	}
}

// AsDocument converts decoded value into Document.
func AsDocument(value any) (Document, error) {
	object, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrDocumentNotObject, jsonTypeName(value))
	}

	return Document(object), nil
}

// normalizeYAMLValue converts YAML decoded values to the JSON value model
// so the schema engine sees the same types for both encodings.
func normalizeYAMLValue(raw any) (any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	return value, nil
}

// jsonTypeName names JSON value type for diagnostics.
func jsonTypeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
