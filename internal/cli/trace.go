package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/network"
	"github.com/roach88/propnet/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Network string // network name within the journal
	Type    string // filter by event type
	Summary bool   // counts per type instead of the event list
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <journal.db>",
		Short: "Inspect a run journal",
		Long: `Read events from a sqlite journal written by run --journal or the
repl. Events print in logical sequence order; wall time never appears.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Network, "network", "", "network name recorded in the journal (required)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "only show events of this type")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "print event counts per type")
	_ = cmd.MarkFlagRequired("network")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	journal, err := trace.Open(path, opts.Network)
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "journal open failed", err)
	}
	defer journal.Close()

	if opts.Summary {
		summary, err := journal.Summary()
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "journal read failed", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(summary)
		}
		for _, t := range []network.EventType{
			network.EventCellCreated,
			network.EventPropagatorCreated,
			network.EventCellUpdated,
			network.EventPropagatorFired,
			network.EventContradiction,
			network.EventPremiseToggled,
		} {
			if count, ok := summary[t]; ok {
				fmt.Fprintf(formatter.Writer, "  %-20s %d\n", t, count)
			}
		}
		return nil
	}

	var events []network.Event
	if opts.Type != "" {
		events, err = journal.ReadEventsOfType(network.EventType(opts.Type))
	} else {
		events, err = journal.ReadEvents()
	}
	if err != nil {
		_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "journal read failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(events)
	}

	for _, ev := range events {
		fmt.Fprintf(formatter.Writer, "[%d] %s", ev.Seq, ev.Type)
		if ev.Cell != "" {
			fmt.Fprintf(formatter.Writer, " cell=%s", ev.Cell)
		}
		if ev.Propagator != "" {
			fmt.Fprintf(formatter.Writer, " propagator=%s", ev.Propagator)
		}
		if ev.Premise != "" {
			fmt.Fprintf(formatter.Writer, " premise=%s believed=%t", ev.Premise, ev.Believed)
		}
		if ev.Old != "" {
			fmt.Fprintf(formatter.Writer, " old=%s", ev.Old)
		}
		if ev.New != "" {
			fmt.Fprintf(formatter.Writer, " new=%s", ev.New)
		}
		fmt.Fprintln(formatter.Writer)
	}

	return nil
}
