// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// RootLocation is how the document root is rendered in violation locations.
const RootLocation = "$"

// Violation is one schema constraint failure.
type Violation struct {
	// Location is the slash-joined instance path, or "$" for the document root.
	Location string `json:"location"`
	// Message is the schema engine's description of the failure.
	Message string `json:"message"`
	// KeywordLocation is the schema keyword path that failed.
	KeywordLocation string `json:"keyword_location"`

	segments []string
}

// Result is the ordered list of violations for one document. Empty means valid.
type Result []Violation

// Valid reports whether the document had no violations.
func (result Result) Valid() bool {
	return len(result) == 0
}

// Messages returns violation messages in result order.
func (result Result) Messages() []string {
	out := make([]string, 0, len(result))
	for _, violation := range result {
		out = append(out, violation.Message)
	}

	return out
}

// Validate checks a decoded document against schema and returns every violation,
// ordered by instance path. The error is reserved for engine failures.
func Validate(value any, schema *Schema) (Result, error) {
	if schema == nil || schema.compiled == nil {
		return nil, fmt.Errorf("%w: schema is not compiled", ErrValidateDocument)
	}

	err := schema.compiled.Validate(value)
	if err == nil {
		return Result{}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("%w: %w", ErrValidateDocument, err)
	}

	result := make(Result, 0, 8)
	collectViolations(validationErr, &result)
	sortViolations(result)

	return result, nil
}

// collectViolations flattens engine error tree into leaf violations.
func collectViolations(node *jsonschema.ValidationError, out *Result) {
	if node == nil {
		return
	}

	if len(node.Causes) == 0 {
		segments := instancePathSegments(node.InstanceLocation)
		*out = append(*out, Violation{
			Location:        formatLocation(segments),
			Message:         node.Message,
			KeywordLocation: node.KeywordLocation,
			segments:        segments,
		})

		return
	}

	for _, cause := range node.Causes {
		collectViolations(cause, out)
	}
}

// sortViolations orders by path segments, root first, then message and keyword.
func sortViolations(result Result) {
	sort.SliceStable(result, func(i, j int) bool {
		left, right := result[i], result[j]
		if cmp := compareSegments(left.segments, right.segments); cmp != 0 {
			return cmp < 0
		}

		if left.Message != right.Message {
			return left.Message < right.Message
		}

		return left.KeywordLocation < right.KeywordLocation
	})
}

// compareSegments compares paths lexicographically; array indexes compare numerically.
func compareSegments(left, right []string) int {
	for index := 0; index < len(left) && index < len(right); index++ {
		if cmp := compareSegment(left[index], right[index]); cmp != 0 {
			return cmp
		}
	}

	switch {
	case len(left) < len(right):
		return -1
	case len(left) > len(right):
		return 1
	default:
		return 0
	}
}

// compareSegment compares one path segment.
func compareSegment(left, right string) int {
	leftIndex, leftErr := strconv.Atoi(left)
	rightIndex, rightErr := strconv.Atoi(right)
	if leftErr == nil && rightErr == nil {
		switch {
		case leftIndex < rightIndex:
			return -1
		case leftIndex > rightIndex:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(left, right)
}

// instancePathSegments splits a JSON pointer into unescaped tokens.
func instancePathSegments(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}

	tokens := strings.Split(pointer, "/")
	for index, token := range tokens {
		tokens[index] = decodeJSONPointerToken(token)
	}

	return tokens
}

// formatLocation joins path segments with "/" and marks the root as "$".
func formatLocation(segments []string) string {
	if len(segments) == 0 {
		return RootLocation
	}

	return strings.Join(segments, "/")
}
