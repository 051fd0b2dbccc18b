// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package bcaselab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultReportPath is where the CLI writes the draft report by default.
const DefaultReportPath = "out/draft.md"

// Top-level document keys.
const (
	keyMetadata       = "metadata"
	keyCaseLevel      = "case_level"
	keyStrategicCase  = "strategic_case"
	keyEconomicCase   = "economic_case"
	keyCommercialCase = "commercial_case"
	keyFinancialCase  = "financial_case"
	keyManagementCase = "management_case"
)

// reportWriter accumulates report lines.
type reportWriter struct {
	lines []string
}

// RenderFile renders doc and writes the report to path, creating parent
// directories as needed. An existing file is replaced.
func RenderFile(doc Document, path string) error {
	rendered, err := Render(doc)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteReport, err)
		}
	}

	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteReport, path, err)
	}

	return nil
}

// Render converts a business case into a Markdown draft report.
// The document is not validated; only the header fields and the five case
// sections must be present.
func Render(doc Document) (string, error) {
	metadata, err := requiredSection(doc, keyMetadata)
	if err != nil {
		return "", err
	}

	header := make(map[string]string, 3)
	for _, key := range []string{"title", "sro", "sponsoring_org"} {
		value, ok := metadata[key]
		if !ok {
			return "", fmt.Errorf("%w %q", ErrMissingField, keyMetadata+"."+key)
		}

		header[key] = formatInline(value)
	}

	caseLevel, ok := doc[keyCaseLevel]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrMissingField, keyCaseLevel)
	}

	sections := make(map[string]map[string]any, 5)
	for _, key := range []string{keyStrategicCase, keyEconomicCase, keyCommercialCase, keyFinancialCase, keyManagementCase} {
		section, err := requiredSection(doc, key)
		if err != nil {
			return "", err
		}

		sections[key] = section
	}

	var out reportWriter
	out.line("# " + header["title"])
	out.blank()
	out.line("**SRO:** " + header["sro"] + "  ")
	out.line("**Organisation:** " + header["sponsoring_org"] + "  ")
	out.line("**Level:** " + formatInline(caseLevel) + "  ")
	out.blank()

	out.strategicCase(sections[keyStrategicCase])
	out.blank()
	out.economicCase(sections[keyEconomicCase])
	out.blank()
	out.commercialCase(sections[keyCommercialCase])
	out.blank()
	out.financialCase(sections[keyFinancialCase])
	out.blank()
	out.managementCase(sections[keyManagementCase])

	return ensureTrailingNewline(strings.Join(out.lines, "\n")), nil
}

func (out *reportWriter) strategicCase(section map[string]any) {
	out.line("## Strategic Case")
	out.line("**Problem statement**: " + formatInline(section["problem_statement"]))
	out.line("**Objectives**:")
	out.bullets(section["objectives"])
	out.line("**Strategic fit**: " + formatInline(section["strategic_fit"]))
	out.line("**Stakeholders**: " + joinInline(section["stakeholders"]))
}

func (out *reportWriter) economicCase(section map[string]any) {
	out.line("## Economic Case")
	out.line("**Options considered:**")
	out.bullets(section["options"])
	out.line("**Preferred option:** " + formatInline(section["preferred_option"]))
	out.line("**NPV:** " + formatInline(section["npv"]))
	out.line("**Sensitivity:** " + formatInline(section["sensitivity"]))
}

func (out *reportWriter) commercialCase(section map[string]any) {
	out.line("## Commercial Case")
	out.line("**Delivery model:** " + formatInline(section["delivery_model"]))
	out.line("**Route to market:** " + formatInline(section["route_to_market"]))
	out.optional("**Lock-in mitigations:** ", section["lock_in_mitigations"])
	out.optional("**Data/AI clauses:** ", section["data_ai_clauses"])
}

func (out *reportWriter) financialCase(section map[string]any) {
	out.line("## Financial Case")
	out.line(fmt.Sprintf(
		"**CAPEX:** %s  **OPEX:** %s  **Cashable benefits:** %s",
		formatInline(section["capex"]),
		formatInline(section["opex"]),
		formatInline(section["cashable_benefits"]),
	))
	out.line("**Funding profile:**")
	for _, entry := range asSlice(section["funding_profile"]) {
		record, ok := entry.(map[string]any)
		if !ok {
			out.line("- " + formatInline(entry))
			continue
		}

		out.line("- " + formatInline(record["year"]) + ": " + formatInline(record["amount"]))
	}
	out.optional("**Non-cashable benefits:** ", section["non_cashable_benefits"])
}

func (out *reportWriter) managementCase(section map[string]any) {
	out.line("## Management Case")
	out.line("**Plan:** " + formatInline(section["plan"]))
	out.line("**Governance:** " + formatInline(section["governance"]))
	if isPresent(section["assurance"]) {
		out.line("**Assurance gates:** " + joinInline(section["assurance"]))
	}
	out.line("**Measurement:** " + formatInline(section["measurement"]))
	out.optional("**DPIA:** ", section["dpia_ref"])
	out.optional("**EQIA:** ", section["eqia_ref"])
	out.optional("**Technical feasibility:** ", section["technical_feasibility"])
}

func (out *reportWriter) line(text string) {
	out.lines = append(out.lines, text)
}

func (out *reportWriter) blank() {
	out.lines = append(out.lines, "")
}

// bullets writes one list item per sequence entry in input order.
func (out *reportWriter) bullets(value any) {
	for _, item := range asSlice(value) {
		out.line("- " + formatInline(item))
	}
}

// optional writes label+value only when value is present.
func (out *reportWriter) optional(label string, value any) {
	if !isPresent(value) {
		return
	}

	out.line(label + formatInline(value))
}

// requiredSection returns a top-level object section or a render error.
func requiredSection(doc Document, key string) (map[string]any, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingField, key)
	}

	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be an object, got %s", ErrFieldType, key, jsonTypeName(raw))
	}

	return section, nil
}
