// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

const (
	// DefaultSamplesDir is the default location of synthetic sample cases.
	DefaultSamplesDir = "testdata/synthetic"
	// DefaultScorecardPath is where the CLI writes the scorecard by default.
	DefaultScorecardPath = "eval/scorecard.json"
	// CaseDirPattern matches sample case directories.
	CaseDirPattern = "case_*"
	// GoldFileName is the canonical document inside each sample case directory.
	GoldFileName = "gold.json"
)

// Scorecard aggregates validation outcomes over sample cases.
type Scorecard struct {
	Cases   []CaseResult `json:"cases"`
	Summary Summary      `json:"summary"`
}

// CaseResult is the outcome for one sample case.
type CaseResult struct {
	CaseID            string   `json:"case_id"`
	Valid             bool     `json:"valid"`
	Errors            []string `json:"errors"`
	HasFundingProfile bool     `json:"has_funding_profile"`
}

// Summary counts processed and valid cases.
type Summary struct {
	Count int `json:"count"`
	Valid int `json:"valid"`
}

// Evaluate validates the gold document of every case_* directory under
// samplesDir, in name order. Directories without a gold document are skipped;
// any other failure to reach it is returned.
// Case validation failures are recorded, not returned.
func Evaluate(samplesDir string, schema *Schema) (Scorecard, error) {
	caseDirs, err := discoverCases(samplesDir)
	if err != nil {
		return Scorecard{}, err
	}

	scorecard := Scorecard{Cases: make([]CaseResult, 0, len(caseDirs))}
	for _, caseDir := range caseDirs {
		goldPath := filepath.Join(caseDir, GoldFileName)
		info, err := os.Stat(goldPath)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}

		if err != nil {
			return Scorecard{}, fmt.Errorf("%w %q: %w", ErrReadSample, filepath.Base(caseDir), err)
		}

		value, err := ReadDocument(goldPath)
		if err != nil {
			return Scorecard{}, fmt.Errorf("%w %q: %w", ErrReadSample, filepath.Base(caseDir), err)
		}

		result, err := Validate(value, schema)
		if err != nil {
			return Scorecard{}, fmt.Errorf("case %q: %w", filepath.Base(caseDir), err)
		}

		caseResult := CaseResult{
			CaseID:            filepath.Base(caseDir),
			Valid:             result.Valid(),
			Errors:            result.Messages(),
			HasFundingProfile: hasFundingProfile(value),
		}

		scorecard.Cases = append(scorecard.Cases, caseResult)
		scorecard.Summary.Count++
		if caseResult.Valid {
			scorecard.Summary.Valid++
		}
	}

	return scorecard, nil
}

// WriteScorecard persists scorecard as indented JSON, replacing previous content.
func WriteScorecard(scorecard Scorecard, path string) error {
	data, err := MarshalScorecard(scorecard)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteScorecard, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteScorecard, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteScorecard, path, err)
	}

	return nil
}

// MarshalScorecard encodes scorecard as two-space indented JSON with trailing newline.
func MarshalScorecard(scorecard Scorecard) ([]byte, error) {
	cases := make([]CaseResult, 0, len(scorecard.Cases))
	for _, result := range scorecard.Cases {
		if result.Errors == nil {
			result.Errors = []string{}
		}

		cases = append(cases, result)
	}

	scorecard.Cases = cases
	return marshalIndented(scorecard)
}

// MarshalSummary encodes summary the way the CLI prints it.
func MarshalSummary(summary Summary) ([]byte, error) {
	return marshalIndented(summary)
}

// marshalIndented encodes value as pretty JSON without HTML escaping.
func marshalIndented(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// discoverCases lists case directories under samplesDir sorted by name.
func discoverCases(samplesDir string) ([]string, error) {
	samplesDir = strings.TrimSpace(samplesDir)
	if samplesDir == "" {
		samplesDir = DefaultSamplesDir
	}

	info, err := os.Stat(samplesDir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSamplesDir, samplesDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w %q: not a directory", ErrSamplesDir, samplesDir)
	}

	entries, err := os.ReadDir(samplesDir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSamplesDir, samplesDir, err)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		matched, err := filepath.Match(CaseDirPattern, entry.Name())
		if err != nil || !matched {
			continue
		}

		out = append(out, filepath.Join(samplesDir, entry.Name()))
	}

	sort.Strings(out)
	return out, nil
}

// hasFundingProfile reports whether financial_case.funding_profile is present and non-empty.
func hasFundingProfile(value any) bool {
	doc, ok := value.(map[string]any)
	if !ok {
		return false
	}

	financial, ok := doc[keyFinancialCase].(map[string]any)
	if !ok {
		return false
	}

	return isPresent(financial["funding_profile"])
}
