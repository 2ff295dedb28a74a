package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/netdef"
	"github.com/roach88/propnet/internal/network"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Sets []string // cell=value writes applied after build
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <definition.cue>",
		Short: "Build a network, apply writes, and print every cell",
		Long: `Build the network a CUE definition describes, apply --set writes in
order, and print the resulting content of every cell. A write that
contradicts existing content fails the evaluation; the network keeps its
prior contents.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Sets, "set", nil, "cell=value write to apply (repeatable); values: 42, 1.5, true, false, [lo,hi]")

	return cmd
}

// EvalReport is the eval command's output payload.
type EvalReport struct {
	Network string            `json:"network"`
	Cells   map[string]string `json:"cells"`
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
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

	built, err := netdef.Build(spec)
	if err != nil {
		_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "build failed", err)
	}

	for _, set := range opts.Sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("bad --set %q: want cell=value", set), nil)
			return NewExitError(ExitCommandError, "bad --set flag")
		}

		cell, exists := built.Cells[name]
		if !exists {
			_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("unknown cell %q", name), nil)
			return NewExitError(ExitCommandError, "unknown cell")
		}

		v, err := parseReplValue(raw)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "bad --set value", err)
		}

		if err := cell.AddContent(v); err != nil {
			if network.IsContradiction(err) {
				_ = formatter.Error(ErrCodeAssertion, err.Error(), nil)
				return WrapExitError(ExitFailure, "contradiction", err)
			}
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write failed", err)
		}
		formatter.VerboseLog("set %s = %s", name, lattice.Format(cell.Query()))
	}

	report := EvalReport{
		Network: spec.Name,
		Cells:   make(map[string]string, len(built.Cells)),
	}
	for name, cell := range built.Cells {
		report.Cells[name] = lattice.Format(cell.Query())
	}

	if opts.Format == "json" {
		return jsonEncode(formatter, CLIResponse{Status: "ok", Data: report})
	}

	names := make([]string, 0, len(report.Cells))
	for name := range report.Cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "%s = %s\n", name, report.Cells[name])
	}
	return nil
}
