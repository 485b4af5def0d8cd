// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tomlexample

// tomlexample generates documented TOML example configs from schema descriptions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/woozymasta/tomlexample"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/tomlexample"
	_buildTime string
)

// cliOptions describes tomlexample CLI flags and subcommands.
type cliOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"Log debug details to stderr"`

	Version  versionCommand  `command:"version" description:"Print version information"`
	Render   renderCommand   `command:"render" description:"Render TOML example from schema description"`
	Check    checkCommand    `command:"check" description:"Render TOML example and verify it parses as TOML"`
	Template templateCommand `command:"template" description:"Print built-in starter schema description"`
}

// renderCommand renders schema description to TOML example.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema description file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output TOML file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command.Args.Input, command.Args.Output)
}

// checkCommand renders schema description and parses the result back.
type checkCommand struct {
	runner *cliRunner
	Args   struct {
		Input string `positional-arg-name:"input" description:"Input schema description file path (optional; stdin when omitted)"`
	} `positional-args:"yes"`
}

// Execute runs check subcommand.
func (command *checkCommand) Execute(_ []string) error {
	return command.runner.runCheck(command.Args.Input)
}

// templateCommand exports built-in starter schema description.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output description file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateName string `short:"t" long:"template" description:"Built-in starter description" choice:"basic" choice:"service" default:"basic"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateName, command.Args.Output)
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      *zap.Logger
	programName string
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
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
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "tomlexample"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      zap.NewNop(),
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

	writeCLIError(runner.stderr, err)
	return 1
}

// runRender renders schema description and writes result to stdout or file.
func (runner *cliRunner) runRender(inputPath, outputPath string) error {
	record, err := runner.loadRecord(inputPath)
	if err != nil {
		return err
	}

	if strings.TrimSpace(outputPath) == "" {
		if err := tomlexample.WriteTOMLExampleTo(record, runner.stdout); err != nil {
			return fmt.Errorf("write example to stdout: %w", err)
		}

		return nil
	}

	if err := tomlexample.WriteTOMLExample(record, outputPath); err != nil {
		return err
	}

	runner.logger.Debug("example written", zap.String("path", outputPath))
	return nil
}

// runCheck renders schema description and verifies the example decodes as TOML.
func (runner *cliRunner) runCheck(inputPath string) error {
	record, err := runner.loadRecord(inputPath)
	if err != nil {
		return err
	}

	example := tomlexample.TOMLExample(record)

	var decoded map[string]any
	if err := toml.Unmarshal([]byte(example), &decoded); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, column := decodeErr.Position()
			return fmt.Errorf("example is not valid TOML at %d:%d: %w", row, column, err)
		}

		return fmt.Errorf("example is not valid TOML: %w", err)
	}

	runner.logger.Debug("example parsed", zap.Int("bytes", len(example)), zap.Int("top_level_keys", len(decoded)))
	_, err = fmt.Fprintln(runner.stdout, "ok")
	return err
}

// runTemplate writes selected built-in starter description to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := tomlexample.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, tpl); err != nil {
			return fmt.Errorf("write template to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(tpl), 0o600); err != nil {
		return fmt.Errorf("write template file %q: %w", outputPath, err)
	}

	return nil
}

// loadRecord loads schema description from file path or stdin.
func (runner *cliRunner) loadRecord(path string) (*tomlexample.Record, error) {
	data, sourcePath, err := runner.readDescriptionInput(path)
	if err != nil {
		return nil, fmt.Errorf("read schema description: %w", err)
	}

	runner.logger.Debug("loading schema description", zap.String("source", sourcePath), zap.Int("bytes", len(data)))
	record, err := tomlexample.LoadRecord(data, tomlexample.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	runner.logger.Debug("schema description loaded", zap.String("record", record.Name), zap.Int("fields", len(record.Fields)))
	return record, nil
}

// readDescriptionInput reads description from file path or stdin and returns source marker.
func (runner *cliRunner) readDescriptionInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read description file %q: %w", path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read description from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read description from stdin: empty input")
	}

	return data, "(stdin)", nil
}

// newLogger builds console logger writing to output; debug level when verbose.
func newLogger(output io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(output), level)
	return zap.New(core)
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Render.runner = runner
	options.Check.runner = runner
	options.Template.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}

		runner.logger = newLogger(runner.stderr, options.Verbose)
		defer func() {
			_ = runner.logger.Sync()
		}()

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"render": strings.TrimSpace(fmt.Sprintf(`
Render documented TOML example from schema description (YAML or JSON).
Reads description from file argument or stdin; writes example to file argument or stdout.
File output is written atomically.

Examples:
> $ %s render schema.yaml > config.example.toml
> $ %s render schema.yaml config.example.toml
`, programName, programName)),
		"check": strings.TrimSpace(fmt.Sprintf(`
Render TOML example and decode it back to verify it is valid TOML.
Prints "ok" on success.

Examples:
> $ %s check schema.yaml
> $ cat schema.yaml | %s check
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in starter schema description (`+"`basic` or `service`"+`).
Use it as a starting point for a custom description file.

Examples:
> $ %s template > schema.yaml
> $ %s template -t service schema.yaml
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

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
