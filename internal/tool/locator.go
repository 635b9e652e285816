// Package tool provides the external-process contract for snowcover.
//
// The Landsat processing executables (the LPGS elevation chain and the
// scene-based snow cover classifier) are opaque collaborators: the only
// contract is the exit code (0 = success) plus the combined output text,
// which is logged verbatim and never parsed.
package tool

import (
	"path/filepath"
	"strings"

	"github.com/lsrd/snowcover/internal/errors"
)

// Mode selects how external executables are resolved.
type Mode int

const (
	// ModeSearchPath invokes tools by bare name, relying on the
	// inherited process search path.
	ModeSearchPath Mode = iota
	// ModeBinDir prefixes tool names with a configured bin directory.
	ModeBinDir
)

// String returns the mode name used in config files and logs.
func (m Mode) String() string {
	if m == ModeBinDir {
		return "bindir"
	}
	return "path"
}

// ParseMode parses a mode name from configuration.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "path":
		return ModeSearchPath, nil
	case "bindir":
		return ModeBinDir, nil
	default:
		return ModeSearchPath, errors.ErrConfigInvalid("tool_mode", "must be 'path' or 'bindir'")
	}
}

// Locator resolves external tool names to invocation paths.
type Locator struct {
	Mode   Mode
	BinDir string
}

// Validate checks that the locator is usable. ModeBinDir with an empty
// directory is a configuration error, not a silent fallthrough.
func (l Locator) Validate() error {
	if l.Mode == ModeBinDir && l.BinDir == "" {
		return errors.ErrConfigMissing("bin_dir")
	}
	return nil
}

// Resolve returns the invocation path for the named tool.
func (l Locator) Resolve(name string) string {
	if l.Mode == ModeBinDir && l.BinDir != "" {
		return filepath.Join(l.BinDir, name)
	}
	return name
}
