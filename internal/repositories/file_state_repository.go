package repositories

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"envy/internal/store"
)

// FileStateRepository writes the aggregate to <dir>/<key>.json. Writes go to a temp file
// in the same directory and are renamed into place so a crash never leaves half a record.
type FileStateRepository struct {
	Dir string
	Key string

	mu sync.Mutex
}

func NewFileStateRepository(dir, key string) (*FileStateRepository, error) {
	if dir == "" {
		return nil, errors.New("state dir is required")
	}
	if key == "" {
		key = store.DefaultStorageKey
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStateRepository{Dir: dir, Key: key}, nil
}

func (r *FileStateRepository) Path() string {
	return filepath.Join(r.Dir, r.Key+".json")
}

func (r *FileStateRepository) Load(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNoState
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *FileStateRepository) Save(ctx context.Context, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.Dir, r.Key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, r.Path())
}

func (r *FileStateRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := os.Remove(r.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (r *FileStateRepository) Driver() string { return "file" }

// Ping checks that the state directory is still writable.
func (r *FileStateRepository) Ping(ctx context.Context) error {
	f, err := os.CreateTemp(r.Dir, ".ping-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
