package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Blob is a single durable resource holding the encoded collection.
//
// Load must return an error satisfying errors.Is(err, fs.ErrNotExist) when the
// resource was never written. Save must replace the resource atomically: a
// concurrent or later Load sees either the old or the new bytes, never a mix.
type Blob interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileBlob stores the collection in one file.
type FileBlob struct {
	Path string
}

const dirPerm = 0o750

// Load reads the file.
func (b FileBlob) Load() ([]byte, error) {
	if b.Path == "" {
		return nil, errors.New("blob path is empty")
	}

	return os.ReadFile(b.Path)
}

// Save writes data to a temp file in the same directory, syncs it and renames
// it over Path. The parent directory is created if missing. A new file is
// private to the owner (0600); an existing file keeps its mode.
func (b FileBlob) Save(data []byte) error {
	if b.Path == "" {
		return errors.New("blob path is empty")
	}

	err := os.MkdirAll(filepath.Dir(b.Path), dirPerm)
	if err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	err = atomic.WriteFile(b.Path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write %s: %w", b.Path, err)
	}

	return nil
}

var _ Blob = FileBlob{}
