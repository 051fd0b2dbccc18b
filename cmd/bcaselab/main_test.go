// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

var samplesDir = filepath.Join("..", "..", "testdata", "synthetic")

func TestRunValidateAcceptsSample(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runCLI(t, "--no-color", "validate", samplePath("case_001"))
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "✅ Valid")
}

func TestRunValidateAcceptsYAMLDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "case.yaml")
	writeFile(t, path, `metadata: {title: T, sro: S, sponsoring_org: O}
case_level: light
strategic_case: {problem_statement: P, objectives: [O1]}
economic_case: {options: [A], preferred_option: A}
commercial_case: {delivery_model: D}
financial_case: {capex: 1, opex: 2}
management_case: {plan: P, governance: G}
`)

	stdout, stderr, code := runCLI(t, "--no-color", "validate", path)
	if code != 0 {
		t.Fatalf("run exit code = %d, stdout: %s stderr: %s", code, stdout, stderr)
	}
}

func TestRunValidateAcceptsEmptySections(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "minimal.json")
	writeFile(t, path, `{"metadata": {"title": "X", "sro": "A", "sponsoring_org": "B"}, "case_level": "standard",
"strategic_case": {}, "economic_case": {}, "commercial_case": {}, "financial_case": {}, "management_case": {}}`)

	stdout, stderr, code := runCLI(t, "--no-color", "validate", path)
	if code != 0 {
		t.Fatalf("run exit code = %d, stdout: %s stderr: %s", code, stdout, stderr)
	}

	assertContains(t, stdout, "✅ Valid")
}

func TestRunValidateListsViolations(t *testing.T) {
	t.Parallel()

	path := writeMutatedSample(t, func(doc map[string]any) {
		delete(doc["metadata"].(map[string]any), "title")
		doc["financial_case"].(map[string]any)["capex"] = "lots"
	})

	stdout, stderr, code := runCLI(t, "--no-color", "validate", path)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1; stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "❌ Validation failed:")
	assertContains(t, stdout, " - financial_case/capex: ")
	assertContains(t, stdout, " - metadata: missing properties: 'title'")

	if strings.Index(stdout, "financial_case/capex") > strings.Index(stdout, " - metadata:") {
		t.Fatalf("violations must be sorted by location:\n%s", stdout)
	}

	if stderr != "" {
		t.Fatalf("violations should not print errors to stderr: %s", stderr)
	}
}

func TestRunValidateJSONOutput(t *testing.T) {
	t.Parallel()

	path := writeMutatedSample(t, func(doc map[string]any) {
		delete(doc, "case_level")
	})

	stdout, stderr, code := runCLI(t, "validate", "--json", path)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1; stderr: %s", code, stderr)
	}

	var report struct {
		Violations []struct {
			Location string `json:"location"`
			Message  string `json:"message"`
		} `json:"violations"`
		Valid bool `json:"valid"`
	}

	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, stdout)
	}

	if report.Valid || len(report.Violations) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	if report.Violations[0].Location != "$" || !strings.Contains(report.Violations[0].Message, "case_level") {
		t.Fatalf("unexpected violation: %+v", report.Violations[0])
	}
}

func TestRunValidateMalformedDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.json")
	writeFile(t, path, `{"metadata": [`)

	stdout, stderr, code := runCLI(t, "--no-color", "validate", path)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr, "decode document")
	assertNotContains(t, stdout, "Validation failed")
}

func TestRunRenderWritesReportFile(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "reports", "draft.md")
	stdout, stderr, code := runCLI(t, "--no-color", "render", samplePath("case_001"), "--out", outPath)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "✅ Rendered → "+outPath)

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	if string(got) != readGoldenReport(t) {
		t.Fatalf("report mismatch:\n%s", got)
	}
}

func TestRunRenderWritesStdout(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runCLI(t, "render", "-o", "-", samplePath("case_001"))
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	if stdout != readGoldenReport(t) {
		t.Fatalf("stdout report mismatch:\n%s", stdout)
	}
}

func TestRunRenderMissingSection(t *testing.T) {
	t.Parallel()

	path := writeMutatedSample(t, func(doc map[string]any) {
		delete(doc, "management_case")
	})

	outPath := filepath.Join(t.TempDir(), "draft.md")
	_, stderr, code := runCLI(t, "--no-color", "render", path, "--out", outPath)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr, `missing required field "management_case"`)

	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatalf("report must not be written on render error: %v", err)
	}
}

func TestRunEvalWritesScorecard(t *testing.T) {
	t.Parallel()

	scorecardPath := filepath.Join(t.TempDir(), "eval", "scorecard.json")
	stdout, stderr, code := runCLI(t, "--no-color", "eval", "--samples", samplesDir, "--scorecard", scorecardPath)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "✅ Evaluation complete → "+scorecardPath)
	assertContains(t, stdout, "{\n  \"count\": 3,\n  \"valid\": 3\n}\n")

	data, err := os.ReadFile(scorecardPath)
	if err != nil {
		t.Fatalf("read scorecard: %v", err)
	}

	var scorecard struct {
		Cases []struct {
			CaseID string `json:"case_id"`
		} `json:"cases"`
	}

	if err := json.Unmarshal(data, &scorecard); err != nil {
		t.Fatalf("decode scorecard: %v", err)
	}

	if len(scorecard.Cases) != 3 || scorecard.Cases[0].CaseID != "case_001" {
		t.Fatalf("unexpected scorecard cases: %+v", scorecard.Cases)
	}
}

func TestRunEvalMissingSamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, stderr, code := runCLI(t, "--no-color", "eval",
		"--samples", filepath.Join(dir, "missing"),
		"--scorecard", filepath.Join(dir, "scorecard.json"),
	)
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr, "samples directory")
}

func TestRunUsesConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gold, err := os.ReadFile(samplePath("case_002"))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	writeFile(t, filepath.Join(dir, "samples", "case_a", "gold.json"), string(gold))
	configPath := filepath.Join(dir, "bcaselab.yaml")
	writeFile(t, configPath, "samples: samples\nscorecard: results/score.json\nno_color: true\n")

	stdout, stderr, code := runCLI(t, "--config", configPath, "eval")
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "{\n  \"count\": 1,\n  \"valid\": 1\n}\n")

	if _, err := os.Stat(filepath.Join(dir, "results", "score.json")); err != nil {
		t.Fatalf("scorecard should be written relative to config: %v", err)
	}
}

func TestRunRejectsUnknownConfigField(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "bcaselab.yaml")
	writeFile(t, configPath, "sample_dir: elsewhere\n")

	_, stderr, code := runCLI(t, "--no-color", "--config", configPath, "version")
	if code != 1 {
		t.Fatalf("run exit code = %d, want 1", code)
	}

	assertContains(t, stderr, "decode config file")
}

func TestRunWarnsOnSchemaWithoutDraft(t *testing.T) {
	t.Parallel()

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	writeFile(t, schemaPath, `{"type": "object", "required": ["metadata"]}`)

	stdout, stderr, code := runCLI(t, "--no-color", "--schema", schemaPath, "validate", samplePath("case_001"))
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "Valid")
	assertContains(t, stderr, "schema has no $schema value")
}

func TestRunWarnsOnUnknownDraft(t *testing.T) {
	t.Parallel()

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	writeFile(t, schemaPath, `{"$schema": "https://example.com/custom/schema", "type": "object"}`)

	_, stderr, code := runCLI(t, "--no-color", "--schema", schemaPath, "validate", samplePath("case_001"))
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stderr, "unsupported $schema value")
}

func TestRunExampleWritesYAML(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runCLI(t, "example", "-m", "required", "-f", "yaml")
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, "metadata:")
	assertContains(t, stdout, "# Metadata")
	assertNotContains(t, stdout, "funding_profile")
}

func TestRunExampleWritesOutputFileThatValidates(t *testing.T) {
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "case.json")
	_, stderr, code := runCLI(t, "example", outPath)
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	stdout, stderr, code := runCLI(t, "--no-color", "validate", outPath)
	if code != 0 {
		t.Fatalf("generated example should validate, code %d\n%s%s", code, stdout, stderr)
	}
}

func TestRunExampleRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t, "example", "-f", "toml")
	if code != 2 {
		t.Fatalf("run exit code = %d, want 2", code)
	}

	assertContains(t, stderr, "toml")
}

func TestRunSchemaPrintsBundledSchema(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := runCLI(t, "schema")
	if code != 0 {
		t.Fatalf("run exit code = %d, stderr: %s", code, stderr)
	}

	assertContains(t, stdout, `"$schema": "https://json-schema.org/draft/2020-12/schema"`)
	assertContains(t, stdout, `"funding_profile"`)
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, "version")
	if code != 0 {
		t.Fatalf("run exit code = %d", code)
	}

	assertContains(t, stdout, "version:  dev")
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	stdout, _, code := runCLI(t, "render", "--help")
	if code != 0 {
		t.Fatalf("run exit code = %d", code)
	}

	assertContains(t, stdout, "Render a business case into a markdown draft report.")
}

func TestRunReturnsErrorForMissingCommand(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t)
	if code != 2 {
		t.Fatalf("run exit code = %d, want 2", code)
	}

	assertContains(t, stderr, "command")
}

func TestRunReturnsErrorForMissingInput(t *testing.T) {
	t.Parallel()

	_, stderr, code := runCLI(t, "validate")
	if code != 2 {
		t.Fatalf("run exit code = %d, want 2", code)
	}

	assertContains(t, stderr, "path")
}

// runCLI runs CLI with buffered streams.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func samplePath(caseID string) string {
	return filepath.Join(samplesDir, caseID, "gold.json")
}

func readGoldenReport(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "render", "case_001.golden.md"))
	if err != nil {
		t.Fatalf("read golden report: %v", err)
	}

	return string(data)
}

// writeMutatedSample copies case_001 with mutate applied into a temp file.
func writeMutatedSample(t *testing.T, mutate func(map[string]any)) string {
	t.Helper()

	data, err := os.ReadFile(samplePath("case_001"))
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode sample: %v", err)
	}

	mutate(doc)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("encode sample: %v", err)
	}

	path := filepath.Join(t.TempDir(), "case.json")
	writeFile(t, path, string(out))
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("did not expect %q in:\n%s", needle, haystack)
	}
}
