// Package fsop performs the filesystem side of the batch move and copy
// commands: pattern evaluation decides the target path, fsop applies it.
package fsop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sentinel errors
var (
	// ErrTargetExists is returned in ModeFail when the target path already exists.
	ErrTargetExists = errors.New("target already exists")
	// ErrSourceMissing is returned when the source path does not exist.
	ErrSourceMissing = errors.New("source does not exist")
	// ErrSameFile is returned when source and target resolve to the same path.
	ErrSameFile = errors.New("source and target are the same file")
)

// Mode decides what happens when the target path already exists.
type Mode int

const (
	// ModeFail aborts the operation with ErrTargetExists.
	ModeFail Mode = iota
	// ModeSkip leaves both files untouched and reports the operation as skipped.
	ModeSkip
	// ModeOverwrite replaces the target.
	ModeOverwrite
)

// Options control one batch operation.
type Options struct {
	Mode   Mode
	DryRun bool
}

// Move renames src to dst, creating parent directories as needed and falling
// back to copy-and-remove when the rename crosses devices. It reports whether
// the operation was performed (false for skips and dry runs).
func Move(src, dst string, opts Options) (bool, error) {
	proceed, err := prepare(src, dst, opts)
	if err != nil || !proceed {
		return false, err
	}

	if err := os.Rename(src, dst); err != nil {
		var linkErr *os.LinkError
		if !errors.As(err, &linkErr) {
			return false, fmt.Errorf("failed to move %s: %w", src, err)
		}

		// Rename across filesystems fails with EXDEV; copy then remove.
		if err := copyFile(src, dst); err != nil {
			return false, err
		}

		if err := os.Remove(src); err != nil {
			return false, fmt.Errorf("failed to remove %s after copy: %w", src, err)
		}
	}

	return true, nil
}

// Copy copies src to dst, creating parent directories as needed.
func Copy(src, dst string, opts Options) (bool, error) {
	proceed, err := prepare(src, dst, opts)
	if err != nil || !proceed {
		return false, err
	}

	if err := copyFile(src, dst); err != nil {
		return false, err
	}

	return true, nil
}

func prepare(src, dst string, opts Options) (bool, error) {
	if _, err := os.Lstat(src); err != nil {
		return false, fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}

	if filepath.Clean(src) == filepath.Clean(dst) {
		return false, fmt.Errorf("%w: %s", ErrSameFile, src)
	}

	if _, err := os.Lstat(dst); err == nil {
		switch opts.Mode {
		case ModeFail:
			return false, fmt.Errorf("%w: %s", ErrTargetExists, dst)
		case ModeSkip:
			return false, nil
		case ModeOverwrite:
		}
	}

	if opts.DryRun {
		return false, nil
	}

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", dst, err)
	}

	return nil
}
