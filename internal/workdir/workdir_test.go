package workdir

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestEnterAndRestore(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	dir := t.TempDir()
	restore, err := Enter(dir)
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}

	got, _ := os.Getwd()
	wantResolved, _ := filepath.EvalSymlinks(dir)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("cwd after Enter = %q, want %q", got, dir)
	}

	if err := restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
	after, _ := os.Getwd()
	if after != before {
		t.Errorf("cwd after restore = %q, want %q", after, before)
	}
}

func TestEnterNonexistentDir(t *testing.T) {
	before, _ := os.Getwd()

	_, err := Enter(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for nonexistent directory")
	}

	after, _ := os.Getwd()
	if after != before {
		t.Errorf("cwd changed on failed Enter: %q -> %q", before, after)
	}
}

func TestIsWritable(t *testing.T) {
	dir := t.TempDir()
	if !IsWritable(dir) {
		t.Errorf("IsWritable(%q) = false, want true", dir)
	}
}

func TestIsWritableReadOnlyDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod semantics differ on windows")
	}
	if os.Getuid() == 0 {
		t.Skip("root bypasses permission bits")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	if IsWritable(dir) {
		t.Errorf("IsWritable(%q) = true for read-only dir, want false", dir)
	}
}
