package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/io"
	"github.com/matzehuels/pauliflow/pkg/pauli"
	"github.com/matzehuels/pauliflow/pkg/synth"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check OPERATORS CIRCUIT",
		Short: "Verify that a circuit brings every operator to single-qubit form",
		Long: `Replay a JSON circuit on an operator list and report which operators
reach support at most one at some point of the circuit. Exits non-zero
when any operator is missed.`,
		Example: `  pauliflow synth ops.txt -o circuit.json
  pauliflow check ops.txt circuit.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], args[1])
		},
	}
}

func runCheck(opsPath, circuitPath string) error {
	ops, err := io.ImportOperators(opsPath)
	if err != nil {
		return err
	}
	set, err := pauli.FromStrings(ops)
	if err != nil {
		return err
	}
	circ, err := io.ImportCircuit(circuitPath)
	if err != nil {
		return err
	}

	err = synth.Check(set, circ)
	var ce *synth.CheckError
	switch {
	case err == nil:
		printSuccess("All %d operators covered by %d gates", set.Len(), len(circ.Gates))
		return nil
	case errors.As(err, &ce):
		printError("Covered %d of %d operators", ce.Covered, ce.Total)
		printDetail("missing: %s", formatIndices(ce.Missing, 10))
		return perrors.Wrap(perrors.ErrCodeCheckFailed, err, "circuit check failed")
	default:
		return perrors.Wrap(perrors.ErrCodeInvalidCircuit, err, "circuit does not fit the operators")
	}
}

// formatIndices lists at most limit indices followed by a count of the rest.
func formatIndices(idx []int, limit int) string {
	if len(idx) <= limit {
		return fmt.Sprint(idx)
	}
	return fmt.Sprintf("%v and %d more", idx[:limit], len(idx)-limit)
}
