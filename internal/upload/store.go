package upload

import (
	"encoding/hex"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Store keeps uploaded image bytes on disk. Filenames derive from a blake2b
// content hash, so uploading the same file twice yields the same asset and
// stored files are immutable.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Store{dir: dir}
}

// Save writes the upload to disk and returns the asset filename. Re-saving
// identical bytes is a cheap no-op returning the existing name.
func (s *Store) Save(data []byte, format string) (string, error) {
	sum := blake2b.Sum256(data)
	name := hex.EncodeToString(sum[:16]) + "." + format
	path := filepath.Join(s.dir, name)

	if _, err := os.Stat(path); err == nil {
		return name, nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return name, nil
}

// Open decodes a stored asset by filename.
func (s *Store) Open(name string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode asset: %w", err)
	}
	return img, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}
