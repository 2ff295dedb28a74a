package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/propnet/internal/lattice"
	"github.com/roach88/propnet/internal/netdef"
	"github.com/roach88/propnet/internal/network"
	"github.com/roach88/propnet/internal/trace"
	"github.com/roach88/propnet/internal/viz"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Journal string // optional sqlite journal path
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl [definition.cue]",
		Short: "Drive a network interactively",
		Long: `Drive a network from a prompt: add contents, toggle premises, wire
new cells and constraints, and watch consequences update. With a CUE
definition argument the session starts from that network; without one it
starts empty. Type "help" at the prompt for the command list.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runRepl(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record every event to a sqlite journal at this path")

	return cmd
}

func runRepl(opts *ReplOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	name := "scratch"
	var spec *netdef.NetSpec
	if path != "" {
		var err error
		spec, err = compileDefinition(path)
		if err != nil {
			return outputCompileError(formatter, err)
		}
		name = spec.Name
	}

	var netOpts []network.Option
	if opts.Journal != "" {
		journal, err := trace.Open(opts.Journal, name)
		if err != nil {
			_ = formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "journal open failed", err)
		}
		defer journal.Close()
		netOpts = append(netOpts, network.WithRecorder(journal))
	}

	var built *netdef.Built
	if spec != nil {
		var err error
		built, err = netdef.Build(spec, netOpts...)
		if err != nil {
			_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "build failed", err)
		}
	} else {
		built = &netdef.Built{
			Net:      network.New(netOpts...),
			Cells:    make(map[string]*network.Cell),
			Premises: make(map[string]*lattice.Premise),
		}
	}

	r := &repl{
		built: built,
		name:  name,
		out:   formatter.Writer,
	}
	return r.loop(cmd.InOrStdin())
}

// repl holds the interactive session state.
type repl struct {
	built *netdef.Built
	name  string
	out   io.Writer
}

func (r *repl) loop(in io.Reader) error {
	fmt.Fprintf(r.out, "network %q loaded; type \"help\" for commands\n", r.name)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(r.out, "%s> ", r.name)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			r.help()
		case "show":
			r.show(fields[1:])
		case "cell":
			r.cell(fields[1:])
		case "wire":
			r.wire(fields[1:])
		case "add":
			r.add(fields[1:])
		case "in":
			r.toggle(fields[1:], true)
		case "out":
			r.toggle(fields[1:], false)
		case "premise":
			r.premise(fields[1:])
		case "premises":
			r.premises()
		case "graph":
			fmt.Fprint(r.out, viz.DOT(r.built.Net, viz.Options{Name: r.name, ShowContents: true}))
		case "turn":
			fmt.Fprintf(r.out, "turn %s\n", r.built.Net.BeginTurn())
		default:
			fmt.Fprintf(r.out, "unknown command %q; type \"help\"\n", fields[0])
		}
	}
}

func (r *repl) help() {
	fmt.Fprint(r.out, `commands:
  show [cell]              print a cell's queried content (or all cells)
  cell <name>              create a new cell
  wire <kind> <cell...>    attach a propagator; kinds: adder, subtractor,
                           multiplier, divider, switch, sum, product,
                           difference, quotient, fahrenheit-celsius,
                           constant (last argument is the value)
  add <cell> <value> [premise...]
                           add content, optionally supported by premises
                           values: 42, 1.5, true, false, [lo,hi]
  in <premise>             believe a premise
  out <premise>            stop believing a premise
  premise <name>           create a new premise (believed)
  premises                 list premises and their belief state
  graph                    print the network as Graphviz DOT
  turn                     start a new turn
  quit                     exit
`)
}

func (r *repl) show(args []string) {
	if len(args) > 0 {
		cell, ok := r.built.Cells[args[0]]
		if !ok {
			fmt.Fprintf(r.out, "unknown cell %q\n", args[0])
			return
		}
		fmt.Fprintf(r.out, "%s = %s\n", args[0], lattice.Format(cell.Query()))
		return
	}

	names := make([]string, 0, len(r.built.Cells))
	for name := range r.built.Cells {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "%s = %s\n", name, lattice.Format(r.built.Cells[name].Query()))
	}
}

func (r *repl) cell(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: cell <name>")
		return
	}
	if _, exists := r.built.Cells[args[0]]; exists {
		fmt.Fprintf(r.out, "cell %q already exists\n", args[0])
		return
	}
	r.built.Cells[args[0]] = r.built.Net.NewCell(args[0])
	fmt.Fprintf(r.out, "cell %q created\n", args[0])
}

func (r *repl) wire(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: wire <kind> <cell...>")
		return
	}

	ps := netdef.PropSpec{Kind: args[0], Cells: args[1:]}
	if ps.Kind == netdef.KindConstant {
		// "wire constant x 42": the trailing argument is the value.
		raw := args[len(args)-1]
		ps.Cells = args[1 : len(args)-1]
		v, err := parseReplValue(raw)
		if err != nil {
			fmt.Fprintln(r.out, err)
			return
		}
		ps.Value = valueSpecOf(v)
	}

	if err := r.built.Wire(ps); err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "wired %s over [%s]\n", ps.Kind, strings.Join(ps.Cells, ", "))
	r.show(nil)
}

// valueSpecOf converts a parsed prompt value back into the definition
// encoding Wire expects.
func valueSpecOf(v lattice.Value) *netdef.ValueSpec {
	switch val := v.(type) {
	case lattice.Number:
		f := float64(val)
		return &netdef.ValueSpec{Number: &f}
	case lattice.Boolean:
		b := bool(val)
		return &netdef.ValueSpec{Boolean: &b}
	case lattice.Interval:
		return &netdef.ValueSpec{Interval: &netdef.IntervalSpec{Lo: val.Lo, Hi: val.Hi}}
	default:
		return nil
	}
}

func (r *repl) add(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "usage: add <cell> <value> [premise...]")
		return
	}

	cell, ok := r.built.Cells[args[0]]
	if !ok {
		fmt.Fprintf(r.out, "unknown cell %q\n", args[0])
		return
	}

	v, err := parseReplValue(args[1])
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}

	if len(args) > 2 {
		premises := make([]*lattice.Premise, 0, len(args)-2)
		for _, name := range args[2:] {
			p, ok := r.built.Premises[name]
			if !ok {
				fmt.Fprintf(r.out, "unknown premise %q\n", name)
				return
			}
			premises = append(premises, p)
		}
		v = lattice.SupportedValue(v, premises...)
	}

	if err := cell.AddContent(v); err != nil {
		if network.IsContradiction(err) {
			fmt.Fprintf(r.out, "contradiction: %v (content kept: %s)\n",
				err, lattice.Format(cell.Query()))
			return
		}
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "%s = %s\n", args[0], lattice.Format(cell.Query()))
}

func (r *repl) toggle(args []string, in bool) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: in|out <premise>")
		return
	}
	var err error
	if in {
		err = r.built.Net.BringInName(args[0])
	} else {
		err = r.built.Net.KickOutName(args[0])
	}
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	fmt.Fprintf(r.out, "premise %q believed=%t\n", args[0], r.built.Net.PremiseIn(args[0]))
}

func (r *repl) premise(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: premise <name>")
		return
	}
	if _, exists := r.built.Premises[args[0]]; exists {
		fmt.Fprintf(r.out, "premise %q already exists\n", args[0])
		return
	}
	r.built.Premises[args[0]] = r.built.Net.NewPremise(args[0])
	fmt.Fprintf(r.out, "premise %q created (believed)\n", args[0])
}

func (r *repl) premises() {
	names := make([]string, 0, len(r.built.Premises))
	for name := range r.built.Premises {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "%s believed=%t\n", name, r.built.Net.PremiseIn(name))
	}
}

// parseReplValue parses a prompt value: a number, a boolean, or an
// interval written [lo,hi].
func parseReplValue(s string) (lattice.Value, error) {
	switch s {
	case "true":
		return lattice.Boolean(true), nil
	case "false":
		return lattice.Boolean(false), nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		parts := strings.Split(strings.Trim(s, "[]"), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("interval syntax is [lo,hi]")
		}
		lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad interval bound %q", parts[0])
		}
		hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad interval bound %q", parts[1])
		}
		return lattice.NewInterval(lo, hi), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("bad value %q: want a number, true/false, or [lo,hi]", s)
	}
	return lattice.Number(f), nil
}
