package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cooperunion/asset-tags/label"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", ""}, args...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func TestGenerateCommand(t *testing.T) {
	t.Setenv("ATAG_FONT_REGULAR", "go-regular")
	t.Setenv("ATAG_FONT_BOLD", "go-bold")
	t.Setenv("ATAG_LOG_LEVEL", "error")

	dir := t.TempDir()
	if err := runCLI(t, "-f", "0", "-t", "0", "-s", dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "0.png")); err != nil {
		t.Error(err)
	}

	dual := t.TempDir()
	if err := runCLI(t, "--tags-from", "3", "--tags-to", "3", "--save", dual, "--layout", "dual"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"3.png", "3_small.png"} {
		if _, err := os.Stat(filepath.Join(dual, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestGenerateCommandErrors(t *testing.T) {
	t.Setenv("ATAG_FONT_REGULAR", "go-regular")
	t.Setenv("ATAG_LOG_LEVEL", "error")

	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var de *label.DomainError
	if err := runCLI(t, "-t", "100000", "-s", dir); !errors.As(err, &de) {
		t.Errorf("tags-to 100000: err = %v, want DomainError", err)
	}
	if err := runCLI(t, "--tags-from=-3", "-s", dir); !errors.As(err, &de) {
		t.Errorf("tags-from -3: err = %v, want DomainError", err)
	}
	var pe *label.PathError
	if err := runCLI(t, "-s", file); !errors.As(err, &pe) {
		t.Errorf("save to file: err = %v, want PathError", err)
	}
	if err := runCLI(t, "-s", dir, "-l", "nope"); err == nil {
		t.Error("unknown layout: expected error")
	}

	t.Setenv("ATAG_FONT_REGULAR", "no-such-font")
	t.Setenv("ATAG_FONT_DIRS", t.TempDir())
	var re *label.ResourceError
	if err := runCLI(t, "-s", dir); !errors.As(err, &re) {
		t.Errorf("missing font: err = %v, want ResourceError", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d entries in save dir, want only the placeholder file", len(entries))
	}
}
