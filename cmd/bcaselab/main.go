// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bcaselab

// bcaselab validates, renders and evaluates business case documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/bcaselab"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/bcaselab"
	_buildTime string
)

// errValidationFailed signals schema violations; details are already printed.
var errValidationFailed = errors.New("validation failed")

// cliOptions describes bcaselab CLI flags and subcommands.
type cliOptions struct {
	Global globalFlags `group:"Global Options"`

	Validate validateCommand `command:"validate" description:"Validate a business case document against the schema"`
	Render   renderCommand   `command:"render" description:"Render a business case document into a markdown draft"`
	Eval     evalCommand     `command:"eval" description:"Validate synthetic sample cases and write a scorecard"`
	Example  exampleCommand  `command:"example" description:"Generate a skeleton business case from the schema"`
	Schema   schemaCommand   `command:"schema" description:"Print the business case schema"`
	Version  versionCommand  `command:"version" description:"Print version information"`
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	SchemaPath string `short:"s" long:"schema" env:"BCASELAB_SCHEMA" description:"Path to business case JSON Schema (bundled schema when omitted)"`
	ConfigPath string `short:"c" long:"config" env:"BCASELAB_CONFIG" description:"Path to YAML config file (bcaselab.yaml is used when present)"`
	NoColor    bool   `long:"no-color" env:"BCASELAB_NO_COLOR" description:"Disable colored output"`
	Verbose    bool   `short:"v" long:"verbose" description:"Enable debug logging to stderr"`
}

// validateCommand validates one document.
type validateCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"path" description:"Business case document (.json, .yaml, .yml)" required:"yes"`
	} `positional-args:"yes"`

	JSON bool `long:"json" description:"Print violations as JSON instead of text"`
}

// Execute runs validate subcommand.
func (command *validateCommand) Execute(_ []string) error {
	return command.runner.runValidate(command.Args.Input, command.JSON)
}

// renderCommand renders one document into markdown.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"path" description:"Business case document (.json, .yaml, .yml)" required:"yes"`
	} `positional-args:"yes"`

	Output string `short:"o" long:"out" description:"Output markdown path; - writes to stdout (default: out/draft.md)"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command.Args.Input, command.Output)
}

// evalCommand scores synthetic sample cases.
type evalCommand struct {
	runner *cliRunner

	Samples   string `long:"samples" description:"Directory holding case_* sample directories (default: testdata/synthetic)"`
	Scorecard string `long:"scorecard" description:"Scorecard output path (default: eval/scorecard.json)"`
}

// Execute runs eval subcommand.
func (command *evalCommand) Execute(_ []string) error {
	return command.runner.runEval(command.Samples, command.Scorecard)
}

// exampleCommand writes a skeleton business case.
type exampleCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Mode   string `short:"m" long:"mode" description:"Property coverage" choice:"all" choice:"required" default:"all"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(command.Mode, command.Format, command.Args.Output)
}

// schemaCommand prints the active schema.
type schemaCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`
}

// Execute runs schema subcommand.
func (command *schemaCommand) Execute(_ []string) error {
	return command.runner.runSchema(command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	command.runner.printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdout      io.Writer
	stderr      io.Writer
	options     *cliOptions
	logger      *slog.Logger
	console     console
	config      fileConfig
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "bcaselab"
	}

	runner := cliRunner{
		programName: filepath.Base(programName),
		stdout:      stdout,
		stderr:      stderr,
		logger:      newLogger(stderr, false),
		console:     newConsole(false),
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	if errors.Is(err, errValidationFailed) {
		return 1
	}

	runner.console.failureLine(runner.stderr, err.Error())
	return 1
}

// prepare applies global flags and config file before a subcommand runs.
func (runner *cliRunner) prepare() error {
	global := runner.options.Global
	runner.logger = newLogger(runner.stderr, global.Verbose)

	config, err := loadFileConfig(global.ConfigPath)
	if err != nil {
		return err
	}

	runner.config = config
	runner.console = newConsole(global.NoColor || config.NoColor)
	if config.Path != "" {
		runner.logger.Debug("config loaded", slog.String("path", config.Path))
	}

	return nil
}

// loadSchema compiles the active schema for one operation.
func (runner *cliRunner) loadSchema() (*bcaselab.Schema, error) {
	path := firstNonEmpty(runner.options.Global.SchemaPath, runner.config.Schema)
	schema, err := bcaselab.LoadSchema(path)
	if err != nil {
		return nil, err
	}

	switch {
	case schema.Draft.Raw == "":
		runner.logger.Warn("schema has no $schema value; assuming draft 2020-12", slog.String("schema", schema.Source))
	case !schema.Draft.Supported:
		runner.logger.Warn("unsupported $schema value", slog.String("schema", schema.Source), slog.String("draft", schema.Draft.Raw))
	default:
		runner.logger.Debug("schema loaded", slog.String("schema", schema.Source), slog.String("draft", schema.Draft.Canonical))
	}

	return schema, nil
}

// runValidate validates one document and prints every violation.
func (runner *cliRunner) runValidate(inputPath string, asJSON bool) error {
	schema, err := runner.loadSchema()
	if err != nil {
		return err
	}

	value, err := bcaselab.ReadDocument(inputPath)
	if err != nil {
		return err
	}

	result, err := bcaselab.Validate(value, schema)
	if err != nil {
		return err
	}

	runner.logger.Debug("document validated", slog.String("path", inputPath), slog.Int("violations", len(result)))

	if asJSON {
		if err := writeValidationJSON(runner.stdout, result); err != nil {
			return err
		}
	} else {
		runner.console.printResult(runner.stdout, result)
	}

	if !result.Valid() {
		return errValidationFailed
	}

	return nil
}

// runRender renders one document to file or stdout.
func (runner *cliRunner) runRender(inputPath, outputPath string) error {
	value, err := bcaselab.ReadDocument(inputPath)
	if err != nil {
		return err
	}

	doc, err := bcaselab.AsDocument(value)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	outputPath = firstNonEmpty(outputPath, runner.config.Out, bcaselab.DefaultReportPath)
	if outputPath == "-" {
		rendered, err := bcaselab.Render(doc)
		if err != nil {
			return err
		}

		_, err = io.WriteString(runner.stdout, rendered)
		return err
	}

	if err := bcaselab.RenderFile(doc, outputPath); err != nil {
		return err
	}

	runner.console.successLine(runner.stdout, "Rendered", "→ "+outputPath)
	return nil
}

// runEval scores sample cases and writes the scorecard.
func (runner *cliRunner) runEval(samplesDir, scorecardPath string) error {
	samplesDir = firstNonEmpty(samplesDir, runner.config.Samples, bcaselab.DefaultSamplesDir)
	scorecardPath = firstNonEmpty(scorecardPath, runner.config.Scorecard, bcaselab.DefaultScorecardPath)

	schema, err := runner.loadSchema()
	if err != nil {
		return err
	}

	scorecard, err := bcaselab.Evaluate(samplesDir, schema)
	if err != nil {
		return err
	}

	for _, result := range scorecard.Cases {
		runner.logger.Debug("case evaluated", slog.String("case", result.CaseID), slog.Bool("valid", result.Valid))
	}

	if err := bcaselab.WriteScorecard(scorecard, scorecardPath); err != nil {
		return err
	}

	summary, err := bcaselab.MarshalSummary(scorecard.Summary)
	if err != nil {
		return err
	}

	runner.console.successLine(runner.stdout, "Evaluation complete", "→ "+scorecardPath)
	_, err = runner.stdout.Write(summary)
	return err
}

// runExample writes a skeleton document generated from the active schema.
func (runner *cliRunner) runExample(mode, format, outputPath string) error {
	schema, err := runner.loadSchema()
	if err != nil {
		return err
	}

	data, err := bcaselab.GenerateExample(schema.Bytes(), bcaselab.ExampleMode(mode), bcaselab.ExampleFormat(format))
	if err != nil {
		return err
	}

	return runner.writeOutput(data, outputPath, "example")
}

// runSchema writes the active schema document.
func (runner *cliRunner) runSchema(outputPath string) error {
	schema, err := runner.loadSchema()
	if err != nil {
		return err
	}

	return runner.writeOutput(schema.Bytes(), outputPath, "schema")
}

// writeOutput writes data to stdout or file.
func (runner *cliRunner) writeOutput(data []byte, outputPath, what string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, outputPath, err)
	}

	return nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Validate.runner = runner
	options.Render.runner = runner
	options.Eval.runner = runner
	options.Example.runner = runner
	options.Schema.runner = runner
	options.Version.runner = runner
	runner.options = options

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		if err := runner.prepare(); err != nil {
			return err
		}

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"validate": strings.TrimSpace(fmt.Sprintf(`
Validate a business case against the schema and list every violation.
Exit code is 1 when the document does not conform.

Examples:
> $ %s validate case.json
> $ %s --schema schema/business_case.schema.json validate --json case.yaml
`, programName, programName)),
		"render": strings.TrimSpace(fmt.Sprintf(`
Render a business case into a markdown draft report.
The document is not validated; run validate first.

Examples:
> $ %s render case.json
> $ %s render case.json --out reports/case.md
`, programName, programName)),
		"eval": strings.TrimSpace(fmt.Sprintf(`
Validate the gold.json document of every case_* sample directory
and write a scorecard with per-case results and a summary.

Examples:
> $ %s eval
> $ %s eval --samples testdata/synthetic --scorecard eval/scorecard.json
`, programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate a skeleton business case from the schema.
YAML output carries schema titles and descriptions as comments.

Examples:
> $ %s example > case.json
> $ %s example -m required -f yaml case.yaml
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// firstNonEmpty returns first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

// newLogger builds stderr text logger; debug level when verbose.
func newLogger(output io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
}

func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
