package shop

import (
	"context"
	"os"
	"path/filepath"
)

// FileStorage keeps the record as a JSON document on the local device, the
// storefront's analog of browser local storage. Writes go through a temp
// file and rename so a crash never leaves a half-written record.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load(ctx context.Context) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (f *FileStorage) Save(ctx context.Context, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
