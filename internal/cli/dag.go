package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pauliflow/pkg/io"
	"github.com/matzehuels/pauliflow/pkg/pipeline"
	"github.com/matzehuels/pauliflow/pkg/render/nodelink"
)

type dagOpts struct {
	output     string
	format     string
	detailed   bool
	transitive bool
}

// dagCommand creates the dag command.
func (c *CLI) dagCommand() *cobra.Command {
	var opts dagOpts

	cmd := &cobra.Command{
		Use:   "dag [file]",
		Short: "Draw the commutation dependency graph of an operator list",
		Long: `Draw the graph whose edges connect anticommuting operators in list
order. Operators with no predecessor form the front layer and are
highlighted. DOT output is written as text; svg and png are rendered
with Graphviz.`,
		Example: `  pauliflow dag ops.txt > ops.dot
  pauliflow dag ops.txt -f svg -o ops.svg --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateDAGFormat(opts.format); err != nil {
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
			return c.runDAG(cmd, ops, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatDOT, "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with index and support size")
	cmd.Flags().BoolVar(&opts.transitive, "transitive", false, "keep transitively implied edges")
	completeValues(cmd, "format", pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG)

	return cmd
}

func (c *CLI) runDAG(cmd *cobra.Command, ops []string, opts *dagOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	runner := c.newRunner(ctx, nil)
	defer runner.Close()

	prog := newProgress(logger)
	var s *Spinner
	if opts.format != pipeline.FormatDOT && interactive() {
		s = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
		s.Start()
	}
	data, err := runner.RenderDAG(ctx, ops, opts.format, nodelink.Options{
		Detailed:   opts.detailed,
		Transitive: opts.transitive,
	})
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Rendered graph of %d operators", len(ops)))
	printFile(opts.output)
	return nil
}
