// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/woozymasta/bcaselab"
)

const (
	successMarker = "✅"
	failureMarker = "❌"
)

// console prints human-readable status lines with optional colors.
type console struct {
	success *color.Color
	failure *color.Color
	bold    *color.Color
}

// newConsole builds console printers. Colors also follow fatih/color terminal detection.
func newConsole(noColor bool) console {
	out := console{
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		bold:    color.New(color.Bold),
	}

	if noColor {
		out.success.DisableColor()
		out.failure.DisableColor()
		out.bold.DisableColor()
	}

	return out
}

// successLine prints "✅ <status> <detail>" with colored status.
func (c console) successLine(w io.Writer, status, detail string) {
	line := c.success.Sprint(successMarker + " " + status)
	if detail != "" {
		line += " " + detail
	}

	_, _ = fmt.Fprintln(w, line)
}

// failureLine prints "❌ <message>" in red.
func (c console) failureLine(w io.Writer, message string) {
	_, _ = fmt.Fprintln(w, c.failure.Sprint(failureMarker+" "+message))
}

// printResult prints validation outcome, one line per violation.
func (c console) printResult(w io.Writer, result bcaselab.Result) {
	if result.Valid() {
		c.successLine(w, "Valid", "")
		return
	}

	c.failureLine(w, "Validation failed:")
	for _, violation := range result {
		_, _ = fmt.Fprintf(w, " - %s: %s\n", c.bold.Sprint(violation.Location), violation.Message)
	}
}

// validationReport is the --json output of validate.
type validationReport struct {
	Violations bcaselab.Result `json:"violations"`
	Valid      bool            `json:"valid"`
}

// writeValidationJSON prints validation result as indented JSON.
func writeValidationJSON(w io.Writer, result bcaselab.Result) error {
	if result == nil {
		result = bcaselab.Result{}
	}

	data, err := json.MarshalIndent(validationReport{Valid: result.Valid(), Violations: result}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode validation result: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
