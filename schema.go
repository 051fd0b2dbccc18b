// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaResourceURL is the resource name the compiled schema is registered under.
const schemaResourceURL = "business_case.schema.json"

// embeddedSchemaSource marks schemas loaded from the bundled copy.
const embeddedSchemaSource = "(embedded)"

//go:embed schema/business_case.schema.json
var embeddedSchema []byte

// DraftInfo describes the JSON Schema draft declared by a schema document.
type DraftInfo struct {
	// Raw is the $schema value as written.
	Raw string
	// Canonical is the short draft name (for example "2020-12"), empty when unknown.
	Canonical string
	// Supported reports whether the validation engine implements the draft.
	Supported bool
}

// Schema is one compiled business case schema.
type Schema struct {
	compiled *jsonschema.Schema
	// Source is the file path or "(embedded)".
	Source string
	// Draft is the detected $schema draft.
	Draft DraftInfo
	raw   []byte
}

// draftAliases maps normalized $schema spellings to canonical draft names.
var draftAliases = map[string]string{
	"json-schema.org/draft/2020-12/schema": "2020-12",
	"json-schema.org/draft/2019-09/schema": "2019-09",
	"json-schema.org/draft-07/schema":      "draft-07",
	"json-schema.org/draft-06/schema":      "draft-06",
	"json-schema.org/draft-04/schema":      "draft-04",
}

// DefaultSchema returns a copy of the bundled business case schema.
func DefaultSchema() []byte {
	return append([]byte(nil), embeddedSchema...)
}

// LoadSchema reads schema from path, or the bundled schema when path is empty,
// and compiles it. Nothing is cached between calls.
func LoadSchema(path string) (*Schema, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return CompileSchema(DefaultSchema(), embeddedSchemaSource)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return CompileSchema(data, path)
}

// CompileSchema compiles schema bytes. Documents without $schema, or with a
// $schema the engine does not know, are treated as Draft 2020-12.
func CompileSchema(data []byte, source string) (*Schema, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	draftURI := ""
	if object, ok := root.(map[string]any); ok {
		draftURI = asString(object["$schema"])
	}

	resource := data
	draft := DetectDraft(draftURI)
	if draft.Raw != "" && !draft.Supported {
		// Unknown meta-schemas are not fetched; such documents compile as Draft 2020-12.
		stripped, err := withoutSchemaKeyword(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
		}

		resource = stripped
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResourceURL, bytes.NewReader(resource)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	compiled, err := compiler.Compile(schemaResourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompileSchema, err)
	}

	if strings.TrimSpace(source) == "" {
		source = "(memory)"
	}

	return &Schema{
		compiled: compiled,
		Source:   source,
		Draft:    draft,
		raw:      append([]byte(nil), data...),
	}, nil
}

// Bytes returns a copy of the schema document the Schema was compiled from.
func (schema *Schema) Bytes() []byte {
	return append([]byte(nil), schema.raw...)
}

// DetectDraft resolves a $schema value to a known draft.
func DetectDraft(uri string) DraftInfo {
	info := DraftInfo{Raw: strings.TrimSpace(uri)}

	normalized := strings.ToLower(info.Raw)
	normalized = strings.TrimPrefix(normalized, "https://")
	normalized = strings.TrimPrefix(normalized, "http://")
	normalized = strings.TrimRight(normalized, "#/")
	if normalized == "" {
		return info
	}

	canonical, ok := draftAliases[normalized]
	if !ok {
		return info
	}

	info.Canonical = canonical
	info.Supported = true
	return info
}

// withoutSchemaKeyword re-encodes a schema object without its $schema keyword.
func withoutSchemaKeyword(root any) ([]byte, error) {
	object, ok := root.(map[string]any)
	if !ok {
		return json.Marshal(root)
	}

	stripped := make(map[string]any, len(object))
	for key, value := range object {
		if key != "$schema" {
			stripped[key] = value
		}
	}

	return json.Marshal(stripped)
}
