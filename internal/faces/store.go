package faces

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// Entry is the slice of a bulk card object kept in the cache.
type Entry struct {
	Name   string   `json:"name"`
	Layout string   `json:"layout"`
	Faces  []string `json:"faces"`
}

// Store holds the cache snapshot. Replace swaps the whole snapshot at once;
// there are no partial updates.
type Store interface {
	// ModTime returns when the snapshot was written, and false if there is none.
	ModTime() (time.Time, bool, error)
	Load() ([]Entry, error)
	Replace(entries []Entry) error
}

// DefaultCachePath returns the per-user cache location.
func DefaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache directory: %w", err)
	}
	return filepath.Join(dir, "topcards", "faces.json.zst"), nil
}

// FileStore keeps the snapshot as zstd-compressed JSON in one file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// ModTime implements Store.
func (s *FileStore) ModTime() (time.Time, bool, error) {
	info, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("stat cache: %w", err)
	}
	return info.ModTime(), true, nil
}

// Load implements Store.
func (s *FileStore) Load() ([]Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	var entries []Entry
	if err := json.NewDecoder(zr).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	return entries, nil
}

// Replace implements Store. The snapshot is written to a temporary file in
// the same directory and renamed over the old one.
func (s *FileStore) Replace(entries []Entry) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "faces-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := writeSnapshot(tmpFile, entries); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

func writeSnapshot(f *os.File, entries []Entry) error {
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := json.NewEncoder(zw).Encode(entries); err != nil {
		zw.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}
	return nil
}
