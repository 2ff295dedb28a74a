package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/netdef"
	"github.com/roach88/propnet/internal/viz"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	Output   string // output file path
	Contents bool   // label cells with their contents
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <definition.cue>",
		Short: "Render a network definition as Graphviz DOT",
		Long: `Build the network a CUE definition describes, apply its initial
contents, and render the wiring as a Graphviz DOT document. Pipe the
output through dot -Tsvg to visualize.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().BoolVar(&opts.Contents, "contents", true, "label cells with their current contents")

	return cmd
}

func runGraph(opts *GraphOptions, path string, cmd *cobra.Command) error {
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

	dot := viz.DOT(built.Net, viz.Options{
		Name:         spec.Name,
		ShowContents: opts.Contents,
	})

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(dot), 0644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "write failed", err)
		}
		formatter.VerboseLog("Wrote DOT graph to %s", opts.Output)
		return nil
	}

	fmt.Fprint(formatter.Writer, dot)
	return nil
}
