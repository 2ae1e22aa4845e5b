package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON document per date under dir.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(date string) string {
	return filepath.Join(s.dir, date+".json")
}

func (s *FileStore) Get(ctx context.Context, date string) (Entry, bool, error) {
	if err := validKey(date); err != nil {
		return Entry{}, false, err
	}
	b, err := os.ReadFile(s.path(date))
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e, err := decode(date, b)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

// Put writes through a temp file and rename so readers never see a partial
// record. Concurrent writers of the same date store identical content.
func (s *FileStore) Put(ctx context.Context, e Entry) error {
	if err := validKey(e.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	b, err := encode(e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	tmp, err := os.CreateTemp(s.dir, e.Date+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	if err := os.Rename(tmp.Name(), s.path(e.Date)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
