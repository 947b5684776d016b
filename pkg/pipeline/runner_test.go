package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/pauliflow/pkg/cache"
	"github.com/matzehuels/pauliflow/pkg/circuit"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
	"github.com/matzehuels/pauliflow/pkg/observability"
	"github.com/matzehuels/pauliflow/pkg/pauli"
	"github.com/matzehuels/pauliflow/pkg/render/nodelink"
	"github.com/matzehuels/pauliflow/pkg/synth"
)

var testOps = []string{"XXI", "IZZ", "YIY", "ZZZ"}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Operators: testOps, Check: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.RunID == "" || res.OpsHash == "" {
		t.Errorf("missing identifiers: %+v", res)
	}
	if res.CacheHit {
		t.Error("NullCache cannot hit")
	}
	if !res.Checked {
		t.Error("Checked should be set")
	}
	if res.Stats.Operators != 4 || res.Stats.Qubits != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.CNOTCount != res.Circuit.CNOTCount() || res.Stats.Gates != res.Circuit.Len() {
		t.Errorf("Stats disagree with circuit: %+v", res.Stats)
	}
	if err := synth.Check(pauli.MustFromStrings(testOps...), res.Circuit); err != nil {
		t.Errorf("circuit does not cover operators: %v", err)
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Operators: []string{"XQ"}})
	if !perrors.Is(err, perrors.ErrCodeInvalidPauli) {
		t.Errorf("Execute error = %v", err)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	first, err := r.Execute(ctx, Options{Operators: testOps, Metric: "depth"})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Fatal("first run should miss")
	}

	second, err := r.Execute(ctx, Options{Operators: testOps, Metric: "depth"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit")
	}
	if first.Circuit.String() != second.Circuit.String() {
		t.Errorf("cached circuit differs:\n%s\nvs\n%s", first.Circuit, second.Circuit)
	}
	if first.RunID == second.RunID {
		t.Error("run IDs should be unique")
	}

	other, err := r.Execute(ctx, Options{Operators: testOps, Metric: "count"})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("different metric must not share a cache entry")
	}

	fresh, err := r.Execute(ctx, Options{Operators: testOps, Metric: "depth", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecuteCheckFailsOnBadCacheEntry(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := Options{Operators: []string{"XX"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.CircuitKey(cache.HashOperators(opts.Operators), opts.CircuitKeyOpts())
	data, _ := json.Marshal(circuit.New(2))
	if err := r.Cache.Set(ctx, key, data, time.Hour); err != nil {
		t.Fatal(err)
	}

	_, err := r.Execute(ctx, Options{Operators: []string{"XX"}, Check: true})
	if !perrors.Is(err, perrors.ErrCodeCheckFailed) {
		t.Fatalf("Execute error = %v, want CHECK_FAILED", err)
	}

	res, err := r.Execute(ctx, Options{Operators: []string{"XX"}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheHit || res.Circuit.Len() != 0 {
		t.Error("without Check the cached circuit is returned as is")
	}
}

func TestExecuteIgnoresMismatchedCacheEntry(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := Options{Operators: []string{"XX"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.CircuitKey(cache.HashOperators(opts.Operators), opts.CircuitKeyOpts())
	data, _ := json.Marshal(circuit.New(5))
	if err := r.Cache.Set(ctx, key, data, time.Hour); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(ctx, Options{Operators: []string{"XX"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("entry with wrong width should be treated as a miss")
	}
}

type recordingHooks struct {
	observability.NoopSynthesisHooks
	mu       sync.Mutex
	started  int
	steps    int
	finished int
	err      error
}

func (h *recordingHooks) OnSynthesisStart(context.Context, string, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started++
}

func (h *recordingHooks) OnStep(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.steps++
}

func (h *recordingHooks) OnSynthesisComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished++
	h.err = err
}

func TestExecuteCancelled(t *testing.T) {
	r := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, Options{Operators: testOps})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExecuteHooksAndProgress(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetSynthesisHooks(hooks)
	defer observability.Reset()

	progress := 0
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Operators: testOps,
		Progress:  func(remaining, gates int) { progress++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if hooks.started != 1 || hooks.finished != 1 || hooks.err != nil {
		t.Errorf("hooks = %+v", hooks)
	}
	if hooks.steps == 0 || hooks.steps != progress {
		t.Errorf("steps = %d, progress callbacks = %d", hooks.steps, progress)
	}
}

func TestRenderDAG(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	dot, err := r.RenderDAG(ctx, []string{"XI", "ZI"}, FormatDOT, nodelink.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "n0 -> n1;") {
		t.Errorf("DOT missing edge:\n%s", dot)
	}

	if _, err := r.RenderDAG(ctx, []string{"XI"}, "pdf", nodelink.Options{}); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("pdf error = %v", err)
	}
	if _, err := r.RenderDAG(ctx, []string{"XI", "X"}, FormatDOT, nodelink.Options{}); !perrors.Is(err, perrors.ErrCodeQubitMismatch) {
		t.Errorf("ragged error = %v", err)
	}
}

func TestRenderDAGSVGCached(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	first, err := r.RenderDAG(ctx, []string{"XI", "ZI"}, FormatSVG, nodelink.Options{})
	if err != nil {
		t.Fatalf("RenderDAG svg: %v", err)
	}
	if !bytes.Contains(first, []byte("<svg")) {
		t.Errorf("not an SVG: %.100s", first)
	}
	second, err := r.RenderDAG(ctx, []string{"XI", "ZI"}, FormatSVG, nodelink.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached SVG differs")
	}
}

func TestFormatCircuit(t *testing.T) {
	c := circuit.New(2)
	c.Append(circuit.H(0), circuit.CNOT(0, 1))

	js, err := FormatCircuit(c, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var back circuit.Circuit
	if err := json.Unmarshal(js, &back); err != nil {
		t.Fatalf("JSON output does not decode: %v", err)
	}
	if back.String() != c.String() {
		t.Errorf("JSON round trip = %s", back.String())
	}

	qasm, _ := FormatCircuit(c, FormatQASM)
	if !strings.Contains(string(qasm), "cx q[0], q[1];") {
		t.Errorf("QASM = %s", qasm)
	}

	text, _ := FormatCircuit(c, FormatText)
	if string(text) != "H(0)\nCNOT(0, 1)\n" {
		t.Errorf("text = %q", text)
	}

	if _, err := FormatCircuit(c, "yaml"); err == nil {
		t.Error("yaml should be rejected")
	}
}
