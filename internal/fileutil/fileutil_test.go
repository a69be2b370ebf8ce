package fileutil_test

// Notes:
// - WriteFileAtomic write/close failure branches are not tested because
//   triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-fontmirror/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateName - Single path element validation
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "plain file name", input: "barlow-bold.ttf", wantErr: nil},
		{name: "fallback name", input: "index.html", wantErr: nil},
		{name: "empty", input: "", wantErr: fileutil.ErrNameEmpty},
		{name: "forward slash", input: "../etc/passwd", wantErr: fileutil.ErrNamePathTraversal},
		{name: "backslash", input: `..\windows`, wantErr: fileutil.ErrNamePathTraversal},
		{name: "null byte", input: "font\x00.ttf", wantErr: fileutil.ErrNamePathTraversal},
		{name: "dot dot", input: "..", wantErr: fileutil.ErrNamePathTraversal},
		{name: "dot", input: ".", wantErr: fileutil.ErrNamePathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFileExists - Regular file detection
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "x.woff2")
	if err := os.WriteFile(file, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Errorf("FileExists(%q) = false, want true", file)
	}
	if fileutil.FileExists(dir) {
		t.Errorf("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Errorf("FileExists(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestEnsureDir - Directory creation
// ---------------------------------------------------------------------------

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "static", "fonts")
		if err := fileutil.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() unexpected error: %v", err)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		t.Parallel()

		if err := fileutil.EnsureDir(t.TempDir()); err != nil {
			t.Errorf("EnsureDir() unexpected error: %v", err)
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "taken")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		err := fileutil.EnsureDir(file)
		if !errors.Is(err, fileutil.ErrNotDirectory) {
			t.Errorf("EnsureDir() error = %v, want ErrNotDirectory", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "fonts.css")

	if err := fileutil.WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "fonts.css")
	if err := fileutil.WriteFileAtomic(path, []byte("x")); err == nil {
		t.Error("WriteFileAtomic() expected error for missing directory")
	}
}

// ---------------------------------------------------------------------------
// TestIsURL - URL detection
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://fonts.gstatic.com/s/barlow/v1/x.woff2", true},
		{"http://example.com", true},
		{"/static/fonts/x.woff2", false},
		{"data:font/woff2;base64,AAAA", false},
		{"ftp://example.com/x", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
