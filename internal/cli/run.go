package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/harness"
	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string // optional sqlite journal path
}

// RunReport is the JSON payload for a scenario run.
type RunReport struct {
	Scenario       string            `json:"scenario"`
	Cells          map[string]string `json:"cells"`
	Events         int               `json:"events"`
	Contradictions int               `json:"contradictions"`
	Failures       []string          `json:"failures,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and check its assertions",
		Long: `Build the scenario's network, execute its steps, and evaluate its
assertions. Exit code 1 signals assertion failure; 2 signals a bad
scenario or definition.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "append the run's events to a sqlite journal at this path")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "scenario load failed", err)
	}

	formatter.VerboseLog("Running scenario %q (%d steps)", scenario.Name, len(scenario.Steps))

	result, err := harness.Run(scenario)
	if err != nil {
		_ = formatter.Error(ErrCodeScenario, err.Error(), nil)
		return WrapExitError(ExitCommandError, "scenario run failed", err)
	}

	if opts.Journal != "" {
		if err := journalEvents(opts.Journal, scenario.Name, result); err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "journal write failed", err)
		}
		formatter.VerboseLog("Journaled %d event(s) to %s", len(result.Trace), opts.Journal)
	}

	failures := harness.Check(scenario, result)

	report := RunReport{
		Scenario:       scenario.Name,
		Cells:          make(map[string]string, len(result.Built.Cells)),
		Events:         len(result.Trace),
		Contradictions: len(result.Contradictions),
	}
	for name, cell := range result.Built.Cells {
		report.Cells[name] = lattice.Format(cell.Query())
	}
	for _, f := range failures {
		report.Failures = append(report.Failures, f.Error())
	}

	if formatter.Format == "json" {
		if len(failures) > 0 {
			_ = formatter.Error(ErrCodeAssertion, fmt.Sprintf("%d assertion(s) failed", len(failures)), report)
			return NewExitError(ExitFailure, "assertions failed")
		}
		return formatter.Success(report)
	}

	names := make([]string, 0, len(report.Cells))
	for name := range report.Cells {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(formatter.Writer, "Scenario %q: %d event(s), %d contradiction(s)\n\n",
		report.Scenario, report.Events, report.Contradictions)
	for _, name := range names {
		fmt.Fprintf(formatter.Writer, "  %s = %s\n", name, report.Cells[name])
	}

	if len(failures) > 0 {
		fmt.Fprintln(formatter.Writer)
		for _, f := range failures {
			fmt.Fprintln(formatter.Writer, f.Error())
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", len(failures)))
	}

	fmt.Fprintln(formatter.Writer, "\n✓ All assertions passed")
	return nil
}

// journalEvents appends a run's trace to a sqlite journal.
func journalEvents(path, networkName string, result *harness.Result) error {
	journal, err := trace.Open(path, networkName)
	if err != nil {
		return err
	}
	defer journal.Close()

	for _, ev := range result.Trace {
		if err := journal.Append(ev); err != nil {
			return err
		}
	}
	return nil
}
