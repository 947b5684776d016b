// Package pipeline runs Pauli-network synthesis for the CLI and the HTTP
// API with shared defaults, validation and result caching.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Operators: []string{"XXI", "IZZ"},
//	    Metric:    "depth",
//	    Check:     true,
//	})
//	fmt.Print(result.Circuit.QASM())
//
// The commutation graph of the same input can be rendered on its own:
//
//	svg, err := runner.RenderDAG(ctx, ops, pipeline.FormatSVG, nodelink.Options{})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pauliflow/pkg/cache"
	"github.com/matzehuels/pauliflow/pkg/circuit"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/synth"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMetric is the cost the greedy search minimizes.
	DefaultMetric = "count"

	// DefaultSeed seeds the qubit relabelings used by Shuffles.
	DefaultSeed = uint64(42)

	// MaxShuffles bounds the number of relabeled re-runs per request.
	MaxShuffles = 1000
)

// Output formats for circuits.
const (
	FormatJSON = "json"
	FormatQASM = "qasm"
	FormatText = "text"
)

// Output formats for commutation graphs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidCircuitFormats is the set of supported circuit output formats.
var ValidCircuitFormats = map[string]bool{
	FormatJSON: true,
	FormatQASM: true,
	FormatText: true,
}

// ValidDAGFormats is the set of supported commutation graph formats.
var ValidDAGFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateCircuitFormat checks that a circuit output format is supported.
func ValidateCircuitFormat(format string) error {
	if !ValidCircuitFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, qasm, text)", format)
	}
	return nil
}

// ValidateDAGFormat checks that a graph output format is supported.
func ValidateDAGFormat(format string) error {
	if !ValidDAGFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one synthesis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Operators     []string `json:"operators"`
	Metric        string   `json:"metric,omitempty"`
	PreserveOrder bool     `json:"preserve_order,omitempty"`
	SkipSort      bool     `json:"skip_sort,omitempty"`
	Shuffles      int      `json:"shuffles,omitempty"`
	Seed          uint64   `json:"seed,omitempty"`

	// Check replays the circuit against the operators before returning.
	Check bool `json:"check,omitempty"`

	// Refresh bypasses the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger    `json:"-"`
	Progress synth.Progress `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the operators and option values and fills in
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Operators) == 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "at least one operator is required")
	}
	if err := perrors.ValidateOperators(o.Operators); err != nil {
		return err
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if err := perrors.ValidateMetric(o.Metric); err != nil {
		return err
	}
	if o.Shuffles < 0 || o.Shuffles > MaxShuffles {
		return perrors.New(perrors.ErrCodeInvalidInput, "shuffles must be between 0 and %d", MaxShuffles)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Qubits returns the operator width.
func (o *Options) Qubits() int {
	if len(o.Operators) == 0 {
		return 0
	}
	return len(o.Operators[0])
}

// SynthOptions converts validated options to [synth.Options].
func (o *Options) SynthOptions() synth.Options {
	m, _ := synth.ParseMetric(o.Metric)
	return synth.Options{
		Metric:        m,
		PreserveOrder: o.PreserveOrder,
		SkipSort:      o.SkipSort,
		Shuffles:      o.Shuffles,
		Seed:          o.Seed,
		Progress:      o.Progress,
	}
}

// CircuitKeyOpts returns cache key options for the synthesized circuit.
func (o *Options) CircuitKeyOpts() cache.CircuitKeyOpts {
	return cache.CircuitKeyOpts{
		Metric:        o.Metric,
		PreserveOrder: o.PreserveOrder,
		SkipSort:      o.SkipSort,
		Shuffles:      o.Shuffles,
		Seed:          o.Seed,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	// OpsHash is the content hash of the operator list.
	OpsHash string `json:"ops_hash"`

	Circuit *circuit.Circuit `json:"circuit"`
	Stats   Stats            `json:"stats"`

	// CacheHit reports whether the circuit came from the cache.
	CacheHit bool `json:"cache_hit"`

	// Checked reports whether the circuit was replayed against the input.
	Checked bool `json:"checked"`
}

// Stats contains circuit metrics and timing.
type Stats struct {
	Operators       int           `json:"operators"`
	Qubits          int           `json:"qubits"`
	Gates           int           `json:"gates"`
	CNOTCount       int           `json:"cnot_count"`
	CNOTDepth       int           `json:"cnot_depth"`
	EntanglingCount int           `json:"entangling_count"`
	EntanglingDepth int           `json:"entangling_depth"`
	Duration        time.Duration `json:"duration_ns"`
}

func newStats(ops int, c *circuit.Circuit, d time.Duration) Stats {
	return Stats{
		Operators:       ops,
		Qubits:          c.Qubits,
		Gates:           c.Len(),
		CNOTCount:       c.CNOTCount(),
		CNOTDepth:       c.CNOTDepth(),
		EntanglingCount: c.EntanglingCount(),
		EntanglingDepth: c.EntanglingDepth(),
		Duration:        d,
	}
}
