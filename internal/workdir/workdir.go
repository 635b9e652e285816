// Package workdir provides scoped working-directory management.
//
// The processing tools resolve scene-relative paths against the process
// working directory, so a run changes into the scene directory for its
// duration. The process cwd is process-global state: Enter hands back a
// restore closure that must run on every exit path.
package workdir

import (
	"fmt"
	"os"
)

// Enter changes the process working directory to dir and returns a
// restore function that changes back to the directory that was current
// when Enter was called. Callers defer the restore so it runs on every
// exit path, including early error returns.
func Enter(dir string) (restore func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("change directory to %s: %w", dir, err)
	}
	return func() error {
		if err := os.Chdir(prev); err != nil {
			return fmt.Errorf("restore directory to %s: %w", prev, err)
		}
		return nil
	}, nil
}

// IsWritable reports whether the current process can create files in dir.
// It probes by creating and removing a temp file; permission bits alone
// are unreliable across filesystems and effective-uid setups.
func IsWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".snowcover-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
