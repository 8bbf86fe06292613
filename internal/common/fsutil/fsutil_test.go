package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// withHome points os.UserHomeDir at a temp dir for the test.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	return home
}

func TestExpandHome(t *testing.T) {
	home := withHome(t)
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if p, err := ExpandHome("~"); err != nil || p != home {
		t.Fatalf("expected %q, got %q err=%v", home, p, err)
	}
	exp, err := ExpandHome("~/artifacts")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if filepath.Base(exp) != "artifacts" || filepath.Dir(exp) != filepath.Clean(home) {
		t.Fatalf("unexpected expanded path: %q", exp)
	}
}

func TestResolve(t *testing.T) {
	home := withHome(t)
	base := t.TempDir()

	got, err := Resolve(base, "scaler.json")
	if err != nil || got != filepath.Join(base, "scaler.json") {
		t.Fatalf("relative: got %q err=%v", got, err)
	}
	abs := filepath.Join(t.TempDir(), "m.json")
	if got, err := Resolve(base, abs); err != nil || got != abs {
		t.Fatalf("absolute: got %q err=%v", got, err)
	}
	if got, err := Resolve(base, "~/m.json"); err != nil || got != filepath.Join(home, "m.json") {
		t.Fatalf("home: got %q err=%v", got, err)
	}
	if got, err := Resolve("~", "m.json"); err != nil || got != filepath.Join(home, "m.json") {
		t.Fatalf("home base: got %q err=%v", got, err)
	}
}

func TestFileSHA256(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x")
	if err := os.WriteFile(p, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sum, err := FileSHA256(p)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("sum=%s", sum)
	}
	if _, err := FileSHA256(p + ".missing"); err == nil {
		t.Fatalf("expected error")
	}
	if !PathExists(p) || PathExists(p+".missing") {
		t.Fatalf("PathExists mismatch")
	}
}
