// Package pathutil validates and opens the files yj reads and writes.
// The name "-" and the empty path stand for the standard streams.
package pathutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Custom error types
var (
	ErrNotExist     = errors.New("path does not exist")
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotRegular   = errors.New("not a regular file")
)

// IsStdio reports whether path names a standard stream.
func IsStdio(path string) bool {
	return path == "" || path == "-"
}

// cleanAndResolve cleans, makes absolute, and resolves symlinks.
func cleanAndResolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("cannot make absolute: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, abs)
		}
		return "", fmt.Errorf("cannot resolve symlinks: %w", err)
	}

	return resolved, nil
}

// ValidateRegularFile ensures the path exists and is a regular file.
// It resolves symlinks.
func ValidateRegularFile(path string) (string, error) {
	resolved, err := cleanAndResolve(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, resolved)
		}
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, resolved)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, resolved)
	}

	return resolved, nil
}

// ValidateDirectory ensures the path exists and is a directory.
func ValidateDirectory(path string) (string, error) {
	resolved, err := cleanAndResolve(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, resolved)
		}
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, resolved)
	}

	return resolved, nil
}

// OpenInput opens the document source named by path.
// Standard input is returned for "-" and "", and closing it is a no-op.
// Named inputs must be regular files.
func OpenInput(path string) (io.ReadCloser, error) {
	if IsStdio(path) {
		return io.NopCloser(os.Stdin), nil
	}

	resolved, err := ValidateRegularFile(path)
	if err != nil {
		return nil, err
	}
	return os.Open(resolved)
}

// CreateOutput creates or truncates the file at path.
// The parent directory must already exist, and path must not be a directory.
func CreateOutput(path string) (*os.File, error) {
	dir, err := ValidateDirectory(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}

	target := filepath.Join(dir, filepath.Base(path))
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, target)
	}

	return os.Create(target)
}
