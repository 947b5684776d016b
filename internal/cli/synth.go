package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pauliflow/pkg/io"
	"github.com/matzehuels/pauliflow/pkg/pipeline"
)

// synthOpts holds the command-line flags for the synth command.
type synthOpts struct {
	output        string // output file, stdout when empty
	format        string // json, qasm or text
	metric        string
	preserveOrder bool
	skipSort      bool
	shuffles      int
	seed          uint64
	check         bool
	refresh       bool
	progress      bool // interactive progress view
	quiet         bool // suppress the stats summary
}

// synthCommand creates the synth command.
func (c *CLI) synthCommand() *cobra.Command {
	var opts synthOpts

	cmd := &cobra.Command{
		Use:   "synth [file]",
		Short: "Synthesize a circuit for a list of Pauli operators",
		Long: `Synthesize a Clifford circuit that brings each operator of the input to
single-qubit form. The input is a text file with one Pauli string per line
or a JSON array; "-" or no argument reads stdin.`,
		Example: `  pauliflow synth ops.txt
  pauliflow synth ops.txt -m depth --preserve-order -f qasm -o circuit.qasm
  echo '["XXI","IZZ"]' | pauliflow synth --check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateCircuitFormat(opts.format); err != nil {
				return err
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			ops, err := io.ImportOperators(path)
			if err != nil {
				return err
			}
			return c.runSynth(cmd, ops, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatJSON, "output format: json, qasm, text")
	cmd.Flags().StringVarP(&opts.metric, "metric", "m", pipeline.DefaultMetric, "cost to minimize: count, depth")
	cmd.Flags().BoolVar(&opts.preserveOrder, "preserve-order", false, "respect the order of anticommuting operators")
	cmd.Flags().BoolVar(&opts.skipSort, "skip-sort", false, "do not sort operators by support size")
	cmd.Flags().IntVar(&opts.shuffles, "shuffles", 0, "extra runs on random qubit relabelings")
	cmd.Flags().Uint64Var(&opts.seed, "seed", pipeline.DefaultSeed, "seed for --shuffles")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify the circuit before writing it")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show a live progress view")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print circuit statistics")
	completeValues(cmd, "format", pipeline.FormatJSON, pipeline.FormatQASM, pipeline.FormatText)
	completeValues(cmd, "metric", "count", "depth")

	return cmd
}

// pipelineOptions merges the config file with flags the user set explicitly.
func (c *CLI) pipelineOptions(cmd *cobra.Command, ops []string, opts *synthOpts) pipeline.Options {
	po := c.cfg.PipelineOptions(ops)
	flags := cmd.Flags()
	if flags.Changed("metric") {
		po.Metric = opts.metric
	}
	if flags.Changed("preserve-order") {
		po.PreserveOrder = opts.preserveOrder
	}
	if flags.Changed("skip-sort") {
		po.SkipSort = opts.skipSort
	}
	if flags.Changed("shuffles") {
		po.Shuffles = opts.shuffles
	}
	if flags.Changed("seed") {
		po.Seed = opts.seed
	}
	if flags.Changed("check") {
		po.Check = opts.check
	}
	po.Refresh = opts.refresh
	po.Logger = c.Logger
	return po
}

func (c *CLI) runSynth(cmd *cobra.Command, ops []string, opts *synthOpts) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx, nil)
	defer runner.Close()

	po := c.pipelineOptions(cmd, ops, opts)

	var (
		res *pipeline.Result
		err error
	)
	if opts.progress {
		res, err = runWithProgress(ctx, runner, po)
	} else {
		res, err = runWithSpinner(ctx, runner, po)
	}
	if err != nil {
		return err
	}

	data, err := pipeline.FormatCircuit(res.Circuit, opts.format)
	if err != nil {
		return err
	}
	if opts.output == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
	}

	if !opts.quiet {
		printResult(res, opts.output)
	}
	return nil
}

func runWithSpinner(ctx context.Context, runner *pipeline.Runner, po pipeline.Options) (*pipeline.Result, error) {
	if !interactive() {
		return runner.Execute(ctx, po)
	}
	s := newSpinnerWithContext(ctx, fmt.Sprintf("Synthesizing %d operators...", len(po.Operators)))
	po.Progress = func(remaining, gates int) {
		s.SetMessage(fmt.Sprintf("Synthesizing... %d left, %d gates", remaining, gates))
	}
	s.Start()
	res, err := runner.Execute(ctx, po)
	s.Stop()
	return res, err
}

// interactive reports whether status output goes to a terminal.
func interactive() bool {
	f, ok := uiOut.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
