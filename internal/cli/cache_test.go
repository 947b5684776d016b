package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pauliflow/pkg/cache"
	perrors "github.com/matzehuels/pauliflow/pkg/errors"
)

func TestCachePath(t *testing.T) {
	c, _ := setupCLI(t)
	out, err := run(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheClear(t *testing.T) {
	c, status := setupCLI(t)
	dir := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte("{}"), cache.TTLCircuit); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := run(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(status.String(), "Cleared 3 cached entries") {
		t.Errorf("status = %q", status.String())
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived clear")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	c, status := setupCLI(t)
	if _, err := run(t, c, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Cache is empty") {
		t.Errorf("status = %q", status.String())
	}
}

func TestCacheClearUnsupportedBackend(t *testing.T) {
	c, _ := setupCLI(t)
	cfg := writeFile(t, "config.toml", "[cache]\nbackend = \"none\"\n")
	_, err := run(t, c, "--config", cfg, "cache", "clear")
	if !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Fatalf("err = %v, want UNSUPPORTED", err)
	}
}

func TestSynthUsesCache(t *testing.T) {
	c, status := setupCLI(t)
	ops := writeFile(t, "ops.txt", "XXI\nIZZ\n")
	out := filepath.Join(t.TempDir(), "circuit.json")

	if _, err := run(t, c, "synth", ops, "-o", out); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(status.String(), iconCached) {
		t.Fatalf("first run reported a cache hit:\n%s", status.String())
	}
	status.Reset()

	if _, err := run(t, c, "synth", ops, "-o", out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), iconCached) {
		t.Errorf("second run missed the cache:\n%s", status.String())
	}
}
