// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// inlineListSeparator joins sequences rendered on one line.
const inlineListSeparator = ", "

// formatInline renders a JSON value for inline markdown text.
// Absent and null values render empty.
func formatInline(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return formatNumber(typed)
	case json.Number:
		return typed.String()
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case []any:
		return joinInline(typed)
	case map[string]any:
		return mustJSONInline(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// formatNumber prints integral values without fraction and others in shortest form.
func formatNumber(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

// joinInline renders sequence items comma-separated; scalars render as-is.
func joinInline(value any) string {
	items, ok := value.([]any)
	if !ok {
		return formatInline(value)
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, formatInline(item))
	}

	return strings.Join(parts, inlineListSeparator)
}

// isPresent reports whether an optional value should produce a line:
// absent, null, empty, false and zero values do not.
func isPresent(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case bool:
		return typed
	case float64:
		return typed != 0
	case json.Number:
		return typed.String() != "0"
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case []any:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	default:
		return true
	}
}

// mustJSONInline marshals values as single-line JSON text for markdown snippets.
func mustJSONInline(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return string(data)
}

// ensureTrailingNewline guarantees exactly one trailing newline in output.
func ensureTrailingNewline(value string) string {
	value = strings.TrimRight(value, "\n")
	return value + "\n"
}
