// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

/*
Package bcaselab validates public-sector business case documents against the
bundled JSON Schema, renders them into Markdown draft reports and scores a
directory of synthetic sample cases.

A business case has seven top-level keys: metadata, case_level and the five
cases (strategic, economic, commercial, financial, management). The schema is
the only contract; the package adds no validation rules of its own.

Validate a document file:

	schema, err := bcaselab.LoadSchema("")
	if err != nil {
		return err
	}

	value, err := bcaselab.ReadDocument("case.json")
	if err != nil {
		return err
	}

	result, err := bcaselab.Validate(value, schema)
	if err != nil {
		return err
	}

	for _, violation := range result {
		fmt.Printf("%s: %s\n", violation.Location, violation.Message)
	}

Render a draft report:

	doc, err := bcaselab.AsDocument(value)
	if err != nil {
		return err
	}

	if err := bcaselab.RenderFile(doc, "out/draft.md"); err != nil {
		return err
	}

Evaluate synthetic samples:

	scorecard, err := bcaselab.Evaluate("testdata/synthetic", schema)
	if err != nil {
		return err
	}

	if err := bcaselab.WriteScorecard(scorecard, "eval/scorecard.json"); err != nil {
		return err
	}

Generate a skeleton document from the schema:

	yamlExample, err := bcaselab.GenerateExample(bcaselab.DefaultSchema(), bcaselab.ExampleModeAll, bcaselab.ExampleFormatYAML)
	if err != nil {
		return err
	}

	fmt.Println(string(yamlExample))
*/
package bcaselab
