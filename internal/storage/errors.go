package storage

import (
	"errors"
	"fmt"
)

// Common errors returned by storage operations.
var (
	// ErrStateNotFound is returned when the primary state file does not exist.
	ErrStateNotFound = errors.New("state file not found")

	// ErrFileTooLarge is returned when an encoded tree exceeds the
	// configured size cap.
	ErrFileTooLarge = errors.New("state file exceeds size limit")

	// ErrNoBackups is returned when recovery finds no usable backup.
	ErrNoBackups = errors.New("no backups available")

	// ErrBackupsDisabled is returned when a backup operation is requested
	// but the policy disables backups.
	ErrBackupsDisabled = errors.New("backups are disabled")

	// ErrWatcherClosed is returned when events are requested from a
	// closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")
)

// PathError wraps an error with the operation and file path that caused it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

func pathErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Err: err}
}
