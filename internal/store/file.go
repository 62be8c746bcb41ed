package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chotalink/chotalink/internal/link"
)

// FileStore persists the collection as a JSON file on local disk. It is the
// default backend: local, durable across restarts, no daemon required.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path, creating parent
// directories as needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(_ context.Context) ([]link.ShortLink, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		// Absent or unreadable file means no links yet.
		return []link.ShortLink{}, nil
	}

	var links []link.ShortLink
	if err := json.Unmarshal(raw, &links); err != nil {
		// Corrupt content is recovered by starting empty.
		return []link.ShortLink{}, nil
	}

	return links, nil
}

func (f *FileStore) Save(_ context.Context, links []link.ShortLink) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}

	// Write-then-rename keeps a crash from leaving a half-written file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, f.path)
}
