package pathutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// TestValidateRegularFile tests the [ValidateRegularFile] function.
func TestValidateRegularFile(t *testing.T) {
	// Create a temp dir and file for testing
	tmpDir := t.TempDir()

	tmpFile := filepath.Join(tmpDir, "input.yaml")
	if err := os.WriteFile(tmpFile, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Create symlink
	symlink := filepath.Join(tmpDir, "link.yaml")
	if err := os.Symlink(tmpFile, symlink); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "valid regular file",
			path: tmpFile,
		},
		{
			name: "valid symlink to regular file",
			path: symlink,
		},
		{
			name:    "directory",
			path:    tmpDir,
			wantErr: ErrIsDirectory,
		},
		{
			name:    "non-existent",
			path:    filepath.Join(tmpDir, "nonexistent"),
			wantErr: ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRegularFile(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateRegularFile() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateRegularFile() unexpected error: %v", err)
			}
			if got == "" {
				t.Error("ValidateRegularFile() returned empty path")
			}
		})
	}
}

// TestValidateDirectory tests the [ValidateDirectory] function.
func TestValidateDirectory(t *testing.T) {
	// Create temp dir for testing
	tmpDir := t.TempDir()

	// Create a regular file
	tmpFile := filepath.Join(tmpDir, "input.yaml")
	if err := os.WriteFile(tmpFile, []byte("a: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Create symlink to directory
	symlink := filepath.Join(tmpDir, "symlink")
	if err := os.Symlink(tmpDir, symlink); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name: "valid directory",
			path: tmpDir,
		},
		{
			name: "valid symlink to directory",
			path: symlink,
		},
		{
			name:    "regular file",
			path:    tmpFile,
			wantErr: ErrNotDirectory,
		},
		{
			name:    "non-existent",
			path:    filepath.Join(tmpDir, "nonexistent"),
			wantErr: ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDirectory(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateDirectory() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateDirectory() unexpected error: %v", err)
			}
			if got == "" {
				t.Error("ValidateDirectory() returned empty path")
			}
		})
	}
}

// TestOpenInput tests the [OpenInput] function.
func TestOpenInput(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "input.toml")
	if err := os.WriteFile(tmpFile, []byte("a = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("file", func(t *testing.T) {
		r, err := OpenInput(tmpFile)
		if err != nil {
			t.Fatalf("OpenInput() error = %v", err)
		}
		defer func() { _ = r.Close() }()

		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "a = 1\n" {
			t.Errorf("read %q", data)
		}
	})

	for _, path := range []string{"", "-"} {
		t.Run("stdin "+path, func(t *testing.T) {
			r, err := OpenInput(path)
			if err != nil {
				t.Fatalf("OpenInput(%q) error = %v", path, err)
			}
			if err := r.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
			if !IsStdio(path) {
				t.Errorf("IsStdio(%q) = false", path)
			}
		})
	}

	errorCases := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"directory", tmpDir, ErrIsDirectory},
		{"non-existent", filepath.Join(tmpDir, "missing.json"), ErrNotExist},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenInput(tt.path); !errors.Is(err, tt.wantErr) {
				t.Errorf("OpenInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCreateOutput tests the [CreateOutput] function.
func TestCreateOutput(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("truncates existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out.json")
		if err := os.WriteFile(path, []byte("old contents"), 0644); err != nil {
			t.Fatal(err)
		}

		f, err := CreateOutput(path)
		if err != nil {
			t.Fatalf("CreateOutput() error = %v", err)
		}
		if _, err := f.WriteString("{}\n"); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "{}\n" {
			t.Errorf("file contains %q, want %q", data, "{}\n")
		}
	})

	errorCases := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing parent", filepath.Join(tmpDir, "missing", "out.json"), ErrNotExist},
		{"directory target", tmpDir, ErrIsDirectory},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CreateOutput(tt.path)
			if err == nil {
				_ = f.Close()
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateOutput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
