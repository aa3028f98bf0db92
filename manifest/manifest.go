// Package manifest handles stackvm.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/stackvm/vm"
)

// Trace modes accepted in the [run] section.
const (
	TraceOff     = "off"
	TraceLog     = "log"
	TraceDisplay = "display"
)

// DefaultCapacity is used when the manifest does not set one.
const DefaultCapacity = 10

// Manifest represents a stackvm.toml run configuration.
type Manifest struct {
	Machine Machine `toml:"machine"`
	Run     Run     `toml:"run"`

	// Dir is the directory containing the stackvm.toml file (set at load time).
	Dir string `toml:"-"`
}

// Machine configures the value stack.
type Machine struct {
	Capacity int     `toml:"capacity"`
	Seed     []int64 `toml:"seed"` // initial stack contents, bottom to top
}

// Run configures what to execute and how to observe it.
type Run struct {
	Program string `toml:"program"` // mnemonic source path, relative to Dir
	Trace   string `toml:"trace"`   // off | log | display
}

// Load parses a stackvm.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "stackvm.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Machine.Capacity == 0 {
		m.Machine.Capacity = DefaultCapacity
	}
	if m.Run.Trace == "" {
		m.Run.Trace = TraceOff
	}

	if err := m.validate(path); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(path string) error {
	switch m.Run.Trace {
	case TraceOff, TraceLog, TraceDisplay:
	default:
		return fmt.Errorf("%s: unknown trace mode %q", path, m.Run.Trace)
	}
	if len(m.Machine.Seed) > m.Machine.Capacity {
		return fmt.Errorf("%s: %w (%d > %d)", path, vm.ErrSeedExceedsCapacity,
			len(m.Machine.Seed), m.Machine.Capacity)
	}
	return nil
}

// ProgramPath returns the program path resolved against the manifest dir.
// It returns "" when the manifest names no program.
func (m *Manifest) ProgramPath() string {
	if m.Run.Program == "" {
		return ""
	}
	if filepath.IsAbs(m.Run.Program) {
		return m.Run.Program
	}
	return filepath.Join(m.Dir, m.Run.Program)
}

// FindAndLoad walks up from startDir to find a stackvm.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "stackvm.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
