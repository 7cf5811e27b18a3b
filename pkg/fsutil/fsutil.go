// Package fsutil provides the file-system safety primitives codewatch
// uses when writing accepted fixes back to disk: snapshot-based
// modification detection and atomic writes.
package fsutil

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNilSnapshot is returned when a nil Snapshot is passed.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Snapshot captures the state of a file at read time, used to detect
// external modification before a fix is written back. The disk-level
// analogue of a stale diagnostic.
type Snapshot struct {
	// Path is the file the snapshot was taken of.
	Path string

	// Mode is the file's permission bits, reused on write-back.
	Mode os.FileMode

	// ModTime and Size back the quick modification check.
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content, for the exact check.
	Hash [32]byte
}

// ReadFile reads a file and returns its content plus a Snapshot for
// later modification detection.
func ReadFile(path string) ([]byte, *Snapshot, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Modified reports whether the file changed since the snapshot was
// taken. Mod time and size are checked first; on a match the content is
// re-hashed, since editors can rewrite a file without changing either.
// A deleted file counts as modified.
func (s *Snapshot) Modified() (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}
