// Package filesys provides a small set of file-system primitives: directory
// creation, existence checks, whole-file reads and writes (used by the engine
// for its engine-marker file), directory listing, and file deletion. The
// segment store does not use it; it calls the os package directly.
package filesys

import (
	"errors"
	"os"
)

var (
	// ErrIsNotDir is returned when a path expected to be a directory is a file.
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates dirPath with the given permission if it doesn't already
// exist. If the path exists and is a file rather than a directory, it
// returns ErrIsNotDir.
func CreateDir(dirPath string, permission os.FileMode) error {
	stat, err := os.Stat(dirPath)
	if err == nil {
		if !stat.IsDir() {
			return ErrIsNotDir
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dirPath, permission)
}

// Exists reports whether a file or directory exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ReadFile reads the entire contents of the file at path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes contents to the file at path, creating or truncating it.
func WriteFile(path string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(path, contents, permission)
}

// ListDir returns the directory entries of dir, in the order the filesystem
// reports them (no sorting guarantee beyond what os.ReadDir provides).
func ListDir(dir string) ([]os.DirEntry, error) {
	return os.ReadDir(dir)
}

// DeleteFile removes the file at path.
func DeleteFile(path string) error {
	return os.Remove(path)
}
