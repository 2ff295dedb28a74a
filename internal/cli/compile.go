package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/netdef"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	CellCount       int `json:"cells"`
	PremiseCount    int `json:"premises"`
	PropagatorCount int `json:"propagators"`
	ContentCount    int `json:"contents"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <definition.cue>",
		Short: "Compile and validate a CUE network definition",
		Long: `Compile a CUE network definition, validate its wiring, and report
the declared cells, premises, and propagators without building the
network.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := compileDefinition(path)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	formatter.VerboseLog("Compiled network %q from %s", spec.Name, path)

	if errs := netdef.Validate(spec); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	if formatter.Format == "json" {
		return formatter.Success(spec)
	}

	stats := CompilationStats{
		CellCount:       len(spec.Cells),
		PremiseCount:    len(spec.Premises),
		PropagatorCount: len(spec.Propagators),
		ContentCount:    len(spec.Contents),
	}

	fmt.Fprintf(formatter.Writer, "✓ Network %q: %d cell(s), %d premise(s), %d propagator(s), %d initial content(s)\n",
		spec.Name, stats.CellCount, stats.PremiseCount, stats.PropagatorCount, stats.ContentCount)

	if len(spec.Propagators) > 0 {
		fmt.Fprintln(formatter.Writer, "\nPropagators:")
		for _, p := range spec.Propagators {
			fmt.Fprintf(formatter.Writer, "  %s: %v\n", p.Kind, p.Cells)
		}
	}

	return nil
}

// compileDefinition reads and compiles a CUE network definition file.
func compileDefinition(path string) (*netdef.NetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return netdef.CompileSource(path, string(data))
}

// outputCompileError reports a compile failure with position info when
// the error carries one.
func outputCompileError(formatter *OutputFormatter, err error) error {
	var compileErr *netdef.CompileError
	if errors.As(err, &compileErr) {
		_ = formatter.Error(ErrCodeCompileFailed, compileErr.Error(), nil)
		return WrapExitError(ExitCommandError, "compilation failed", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "compilation failed", err)
}

// outputValidationErrors reports every validation error.
func outputValidationErrors(formatter *OutputFormatter, errs []netdef.ValidationError) error {
	if formatter.Format == "json" {
		first := CLIError{Code: errs[0].Code, Message: errs[0].Message}
		response := CLIResponse{
			Status: "error",
			Error:  &first,
			Data:   errs, // all errors
		}
		if err := jsonEncode(formatter, response); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
