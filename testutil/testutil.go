// Package testutil provides helpers for tests that compare generated Julia
// text and lay out fixture files.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Lines joins lines with newlines and terminates the last one, so an
// expected block can be written one statement per argument.
func Lines(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// AssertText fails the test when got differs from want. The report names
// the first differing line so whitespace mistakes are easy to spot.
func AssertText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	line, g, w := FirstDiff(got, want)
	t.Errorf("text differs at line %d:\n got: %q\nwant: %q\n\nfull output:\n%s", line, g, w, got)
}

// FirstDiff returns the 1-based number of the first line where got and
// want differ, with both versions of that line. It returns 0 when the texts
// are equal.
func FirstDiff(got, want string) (line int, g, w string) {
	if got == want {
		return 0, "", ""
	}
	gl := strings.Split(got, "\n")
	wl := strings.Split(want, "\n")
	for i := 0; ; i++ {
		var gi, wi string
		if i < len(gl) {
			gi = gl[i]
		}
		if i < len(wl) {
			wi = wl[i]
		}
		if gi != wi || i >= len(gl) || i >= len(wl) {
			return i + 1, gi, wi
		}
	}
}

// WriteFiles writes each name/content pair under dir, creating parent
// directories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// TempModule creates a standalone Go module named "test" holding files and
// disables go.work so the go command treats it in isolation.
func TempModule(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("GOWORK", "off")
	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{"go.mod": "module test\n\ngo 1.21\n"})
	WriteFiles(t, dir, files)
	return dir
}
