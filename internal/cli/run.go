// Package cli wires the ethiopia command surface with spf13/cobra, the way
// the teacher's cli package builds commands (cli/deploy.go's flag parsing
// into RunE, cli/main.go's root-command + subcommand assembly) — ground:
// SPEC_FULL §6's "`ethiopia run <config.yml> ...` built with spf13/cobra".
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/C2SM/ethiopia/internal/appconfig"
	"github.com/C2SM/ethiopia/internal/configmodel"
	"github.com/C2SM/ethiopia/internal/logging"
	"github.com/C2SM/ethiopia/internal/prettyprint"
	"github.com/C2SM/ethiopia/internal/vizgraph"
	"github.com/C2SM/ethiopia/internal/workflow"
	"github.com/C2SM/ethiopia/internal/yamlconfig"
)

// Exit codes per SPEC_FULL §6: 0 success, 2 configuration validation
// failure, 1 internal/backend error.
const (
	ExitSuccess       = 0
	ExitBackendError  = 1
	ExitConfigInvalid = 2
)

// RootCmd builds the ethiopia root command and its subcommands.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ethiopia",
		Short: "Unroll and resolve sirocco-style workflow configurations",
	}
	root.AddCommand(runCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config.yml>",
		Short: "Load, validate, and unroll a workflow configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(cmd, args[0])
		},
	}

	cmd.Flags().String("log-level", "", "Override log level (debug|info|warn|error|disabled)")
	cmd.Flags().Bool("strict", false, "Override strict mode")
	cmd.Flags().Bool("print", false, "Pretty-print the resolved workflow to stdout")
	cmd.Flags().String("svg", "", "Render the resolved workflow's SVG adapter output to this file")

	return cmd
}

func runE(cmd *cobra.Command, configPath string) error {
	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return exitError{code: ExitBackendError, err: err}
	}

	settings, err := appconfig.Load(overrides)
	if err != nil {
		return exitError{code: ExitBackendError, err: err}
	}

	logger := logging.NewLogger(&logging.Config{
		Level:      settings.LogLevel,
		Output:     os.Stdout,
		TimeFormat: "15:04:05",
	})
	cmd.SetContext(logging.ContextWithLogger(cmd.Context(), logger))

	logger.Info("loading configuration", "path", configPath)
	cfg, err := yamlconfig.Load(configPath)
	if err != nil {
		return exitError{code: ExitConfigInvalid, err: fmt.Errorf("loading %s: %w", configPath, err)}
	}

	cfg.Tasks, err = configmodel.ApplyRootDefaults(cfg.Tasks)
	if err != nil {
		return exitError{code: ExitConfigInvalid, err: err}
	}

	if err := cfg.Validate(); err != nil {
		return exitError{code: ExitConfigInvalid, err: err}
	}

	logger.Info("unrolling workflow", "name", cfg.Name)
	wf, err := workflow.Build(cfg)
	if err != nil {
		code := ExitBackendError
		if isConfigError(err) {
			code = ExitConfigInvalid
		}
		return exitError{code: code, err: err}
	}

	shouldPrint, _ := cmd.Flags().GetBool("print")
	if shouldPrint {
		fmt.Fprintln(cmd.OutOrStdout(), prettyprint.New().Format(wf))
	}

	svgPath, _ := cmd.Flags().GetString("svg")
	if svgPath != "" {
		f, err := os.Create(svgPath)
		if err != nil {
			return exitError{code: ExitBackendError, err: fmt.Errorf("creating %s: %w", svgPath, err)}
		}
		defer f.Close()
		if err := vizgraph.Render(f, wf); err != nil {
			return exitError{code: ExitBackendError, err: fmt.Errorf("rendering svg: %w", err)}
		}
		logger.Info("wrote svg", "path", svgPath)
	}

	logger.Info("done",
		"tasks", len(wf.Tasks.Iterate()),
		"data", len(wf.Data.Iterate()),
		"cycles", len(wf.Cycles.Iterate()),
	)
	return nil
}

func overridesFromFlags(cmd *cobra.Command) (appconfig.Overrides, error) {
	var o appconfig.Overrides

	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return o, err
	}
	if level != "" {
		o.LogLevel = &level
	}

	if cmd.Flags().Changed("strict") {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return o, err
		}
		o.Strict = &strict
	}

	return o, nil
}

func isConfigError(err error) bool {
	return errors.Is(err, configmodel.ErrConfigInvalid)
}

// exitError carries the process exit code its cause should produce,
// unwrapped by ExitCode.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

// ExitCode returns the process exit code err should produce: 0 if err is
// nil, the code carried by an exitError, or ExitBackendError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitBackendError
}
