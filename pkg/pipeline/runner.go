package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pauliflow/pkg/cache"
	"github.com/matzehuels/pauliflow/pkg/circuit"
	"github.com/matzehuels/pauliflow/pkg/dag"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/observability"
	"github.com/matzehuels/pauliflow/pkg/pauli"
	"github.com/matzehuels/pauliflow/pkg/render/nodelink"
	"github.com/matzehuels/pauliflow/pkg/synth"
)

// Runner executes synthesis with caching.
// Both CLI and API use it so that caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long circuits stay cached; zero means cache.TTLCircuit.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute synthesizes a circuit for opts.Operators, serving it from the cache
// when possible. With opts.Check the circuit is replayed against the
// operators and a failure is reported as CHECK_FAILED.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ops, err := pauli.FromStrings(opts.Operators)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   uuid.NewString(),
		OpsHash: cache.HashOperators(opts.Operators),
	}
	logger := r.Logger.With("run", result.RunID[:8])
	key := r.Keyer.CircuitKey(result.OpsHash, opts.CircuitKeyOpts())

	start := time.Now()
	if !opts.Refresh {
		if c, ok := r.lookup(ctx, logger, key, ops.Qubits()); ok {
			result.Circuit = c
			result.CacheHit = true
		}
	}

	if result.Circuit == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.synthesize(ctx, ops, opts)
		if err != nil {
			return nil, err
		}
		result.Circuit = c
		r.store(ctx, logger, key, c)
	}
	result.Stats = newStats(ops.Len(), result.Circuit, time.Since(start))

	if opts.Check {
		if err := synth.Check(ops, result.Circuit); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeCheckFailed, err, "circuit check failed")
		}
		result.Checked = true
	}

	logger.Info("synthesized circuit",
		"operators", result.Stats.Operators,
		"qubits", result.Stats.Qubits,
		"metric", opts.Metric,
		"cnots", result.Stats.CNOTCount,
		"depth", result.Stats.CNOTDepth,
		"cached", result.CacheHit,
		"duration", result.Stats.Duration)

	return result, nil
}

// synthesize runs the drivers and converts a driver panic into an internal
// error so that a single bad request cannot take down a server.
func (r *Runner) synthesize(ctx context.Context, ops *pauli.Set, opts Options) (c *circuit.Circuit, err error) {
	hooks := observability.Synthesis()
	hooks.OnSynthesisStart(ctx, opts.Metric, ops.Len(), ops.Qubits())

	sopts := opts.SynthOptions()
	user := sopts.Progress
	sopts.Progress = func(remaining, gates int) {
		hooks.OnStep(ctx, remaining, gates)
		if user != nil {
			user(remaining, gates)
		}
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			c, err = nil, perrors.New(perrors.ErrCodeInternal, "synthesis failed: %v", p)
		}
		if c != nil {
			hooks.OnSynthesisComplete(ctx, opts.Metric, c.EntanglingCount(), c.EntanglingDepth(), time.Since(start), nil)
		} else {
			hooks.OnSynthesisComplete(ctx, opts.Metric, 0, 0, time.Since(start), err)
		}
	}()

	opts.Logger.Debug("synthesizing",
		"operators", ops.Len(),
		"qubits", ops.Qubits(),
		"metric", opts.Metric,
		"preserve_order", opts.PreserveOrder,
		"shuffles", opts.Shuffles)

	return synth.Synthesize(ops, sopts), nil
}

// lookup fetches and decodes a cached circuit. Backend errors and entries
// that do not fit the operators count as misses.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string, qubits int) (*circuit.Circuit, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "circuit")
		return nil, false
	}

	var c circuit.Circuit
	if err := json.Unmarshal(data, &c); err != nil || c.Qubits != qubits || c.Validate() != nil {
		logger.Debug("discarding unusable cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, "circuit")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "circuit")
	return &c, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, c *circuit.Circuit) {
	data, err := json.Marshal(c)
	if err != nil {
		logger.Warn("encode circuit for cache", "err", err)
		return
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.ttl())
	})
	if err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "circuit", len(data))
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLCircuit
}

// RenderDAG renders the commutation dependency graph of ops as DOT, SVG or
// PNG. Rendered images are cached; DOT is cheap and always regenerated.
func (r *Runner) RenderDAG(ctx context.Context, ops []string, format string, opts nodelink.Options) ([]byte, error) {
	if err := ValidateDAGFormat(format); err != nil {
		return nil, err
	}
	set, err := pauli.FromStrings(ops)
	if err != nil {
		return nil, err
	}

	dot := nodelink.ToDOT(dag.Build(set), ops, opts)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.DAGKey(cache.HashOperators(ops), fmt.Sprintf("%s:%t:%t", format, opts.Detailed, opts.Transitive))
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "dag")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "dag")

	var out []byte
	switch format {
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		out, err = nodelink.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "render %s", format)
	}

	if err := r.Cache.Set(ctx, key, out, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "dag", len(out))
	}
	return out, nil
}

// FormatCircuit encodes a circuit in one of the circuit output formats.
func FormatCircuit(c *circuit.Circuit, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatQASM:
		return []byte(c.QASM()), nil
	case FormatText:
		return []byte(c.String()), nil
	}
	return nil, ValidateCircuitFormat(format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
