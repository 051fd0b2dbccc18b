// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import "errors"

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrCompileSchema is returned when the schema engine rejects the schema document.
	ErrCompileSchema = errors.New("compile schema")
	// ErrReadDocument is returned when a business case file cannot be read.
	ErrReadDocument = errors.New("read document")
	// ErrDecodeDocument is returned when a business case file is not valid JSON or YAML.
	ErrDecodeDocument = errors.New("decode document")
	// ErrDocumentNotObject is returned when document root is not a JSON object.
	ErrDocumentNotObject = errors.New("document root must be an object")
	// ErrValidateDocument is returned when the schema engine fails for reasons other than violations.
	ErrValidateDocument = errors.New("validate document")
	// ErrMissingField is returned by render when a required section or header field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrFieldType is returned by render when a required section has unexpected shape.
	ErrFieldType = errors.New("unexpected field type")
	// ErrWriteReport is returned when markdown report persistence fails.
	ErrWriteReport = errors.New("write report")
	// ErrSamplesDir is returned when evaluation sample directory is missing or unreadable.
	ErrSamplesDir = errors.New("samples directory")
	// ErrReadSample is returned when one evaluation gold document cannot be loaded.
	ErrReadSample = errors.New("read sample")
	// ErrWriteScorecard is returned when scorecard persistence fails.
	ErrWriteScorecard = errors.New("write scorecard")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when generated example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when generated example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)
