package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/stackvm/vm"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "stackvm.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[machine]
capacity = 4
seed = [1, 2]

[run]
program = "abs.svm"
trace = "display"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Machine.Capacity != 4 {
		t.Errorf("Capacity = %d, want 4", m.Machine.Capacity)
	}
	if len(m.Machine.Seed) != 2 || m.Machine.Seed[1] != 2 {
		t.Errorf("Seed = %v, want [1 2]", m.Machine.Seed)
	}
	if m.Run.Trace != TraceDisplay {
		t.Errorf("Trace = %q, want display", m.Run.Trace)
	}
	if got, want := m.ProgramPath(), filepath.Join(m.Dir, "abs.svm"); got != want {
		t.Errorf("ProgramPath() = %q, want %q", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[run]
program = "p.svm"
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Machine.Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want default %d", m.Machine.Capacity, DefaultCapacity)
	}
	if m.Run.Trace != TraceOff {
		t.Errorf("Trace = %q, want off", m.Run.Trace)
	}
}

func TestLoadSeedExceedsCapacity(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[machine]
capacity = 2
seed = [1, 2, 3]
`)

	_, err := Load(dir)
	if !errors.Is(err, vm.ErrSeedExceedsCapacity) {
		t.Errorf("err = %v, want ErrSeedExceedsCapacity", err)
	}
}

func TestLoadUnknownTraceMode(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[run]
trace = "loud"
`)

	if _, err := Load(dir); err == nil {
		t.Error("Load accepted an unknown trace mode")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load succeeded without a stackvm.toml")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[run]
program = "p.svm"
`)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad found nothing")
	}
	if m.Dir != dir {
		t.Errorf("Dir = %q, want %q", m.Dir, dir)
	}
}
