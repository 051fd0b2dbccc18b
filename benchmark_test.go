// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkCompileSchema measures bundled schema decoding and compilation cost.
func BenchmarkCompileSchema(b *testing.B) {
	schemaBytes := DefaultSchema()

	b.ReportAllocs()
	b.SetBytes(int64(len(schemaBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := CompileSchema(schemaBytes, "bench"); err != nil {
			b.Fatalf("CompileSchema: %v", err)
		}
	}
}

// BenchmarkValidateSample measures validation of one decoded sample.
func BenchmarkValidateSample(b *testing.B) {
	schema, err := LoadSchema("")
	if err != nil {
		b.Fatalf("LoadSchema: %v", err)
	}

	value := readBenchmarkSample(b, "case_001")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Validate(value, schema); err != nil {
			b.Fatalf("Validate: %v", err)
		}
	}
}

// BenchmarkRenderSample measures in-memory Markdown rendering of one sample.
func BenchmarkRenderSample(b *testing.B) {
	doc, err := AsDocument(readBenchmarkSample(b, "case_001"))
	if err != nil {
		b.Fatalf("AsDocument: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Render(doc); err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// BenchmarkEvaluateSamples measures discovery, read and validation of the bundled corpus.
func BenchmarkEvaluateSamples(b *testing.B) {
	schema, err := LoadSchema("")
	if err != nil {
		b.Fatalf("LoadSchema: %v", err)
	}

	samplesDir := filepath.Join("testdata", "synthetic")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(samplesDir, schema); err != nil {
			b.Fatalf("Evaluate: %v", err)
		}
	}
}

// readBenchmarkSample loads one sample gold file and fails benchmark on errors.
func readBenchmarkSample(b *testing.B, caseID string) any {
	b.Helper()

	path := filepath.Join("testdata", "synthetic", caseID, GoldFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	value, err := DecodeDocument(data, FormatJSON)
	if err != nil {
		b.Fatalf("decode benchmark file %q: %v", path, err)
	}

	return value
}
