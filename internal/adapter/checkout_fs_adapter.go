// Package adapter contains the infrastructure adapters the mutation-score
// workflow drives: filesystem, processes, launcher scripts, Java sources,
// revision lookup, the score ledger and tracing.
package adapter

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	m "mutscore.dev/pkg/mutscore/internal/model"
)

// CheckoutFSAdapter abstracts the filesystem operations performed on a
// defects4j checkout, so domain logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type CheckoutFSAdapter interface {
	// Walk traverses root. When recursive is false only the root directory is listed.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file, creating parent directories.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// Exists reports whether path exists.
	Exists(path m.Path) (bool, error)

	// ReadDir returns the sorted entry names of a directory.
	ReadDir(path m.Path) ([]string, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path) error

	// RemoveAll removes a path and all its contents. Missing paths are not an error.
	RemoveAll(path m.Path) error

	// CopyDir recursively copies a directory tree.
	CopyDir(src, dst m.Path) error

	// CopyFile copies a single file, creating parent directories.
	CopyFile(src, dst m.Path) error

	// MoveFile renames a file or directory, copying across filesystems when needed.
	MoveFile(src, dst m.Path) error

	// ReadProperties parses a key=value file.
	ReadProperties(path m.Path) (map[string]string, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalCheckoutFSAdapter is the os-backed CheckoutFSAdapter.
type LocalCheckoutFSAdapter struct{}

// NewLocalCheckoutFSAdapter constructs a LocalCheckoutFSAdapter.
func NewLocalCheckoutFSAdapter() *LocalCheckoutFSAdapter {
	return &LocalCheckoutFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalCheckoutFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalCheckoutFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - paths are derived from the checkout being analyzed
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalCheckoutFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalCheckoutFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// Exists reports whether path exists.
func (a *LocalCheckoutFSAdapter) Exists(path m.Path) (bool, error) {
	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// ReadDir lists the entries of a directory in lexical order.
func (a *LocalCheckoutFSAdapter) ReadDir(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	slices.Sort(names)

	return names, nil
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalCheckoutFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// RemoveAll removes a directory and all its contents.
func (a *LocalCheckoutFSAdapter) RemoveAll(path m.Path) error {
	return os.RemoveAll(string(path))
}

// CopyDir recursively copies a directory tree, skipping version control metadata.
func (a *LocalCheckoutFSAdapter) CopyDir(src, dst m.Path) error {
	return filepath.Walk(string(src), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(string(src), path)
		if err != nil {
			return err
		}

		if info.IsDir() && filepath.Base(path) == ".git" {
			return filepath.SkipDir
		}

		targetPath := filepath.Join(string(dst), relPath)

		if info.IsDir() {
			return os.MkdirAll(targetPath, info.Mode())
		}

		return copyFile(path, targetPath, info.Mode())
	})
}

// CopyFile copies a single file keeping its mode.
func (a *LocalCheckoutFSAdapter) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	return copyFile(string(src), string(dst), info.Mode())
}

// MoveFile renames src to dst. A rename across devices falls back to copy and remove.
func (a *LocalCheckoutFSAdapter) MoveFile(src, dst m.Path) error {
	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	err := os.Rename(string(src), string(dst))
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	if info.IsDir() {
		if err := a.CopyDir(src, dst); err != nil {
			return err
		}
	} else if err := a.CopyFile(src, dst); err != nil {
		return err
	}

	return os.RemoveAll(string(src))
}

// ReadProperties parses a key=value file. Blank lines, lines starting with '#'
// and lines without '=' are skipped; values may themselves contain '='.
func (a *LocalCheckoutFSAdapter) ReadProperties(path m.Path) (map[string]string, error) {
	// #nosec G304 - properties files live inside the checkout
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() { _ = f.Close() }()

	props := make(map[string]string)
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return props, scanner.Err()
}

// JoinPath joins path elements into a single path.
func (a *LocalCheckoutFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}

func copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src is a checkout file path, not user input
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is a checkout destination path, not user input
	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}
