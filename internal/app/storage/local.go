package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"custody/internal/app/apperr"

	"github.com/spf13/afero"
)

// FileStore keeps artifacts and template blobs on a filesystem. Production uses the OS
// filesystem under a root directory; tests pass an in-memory one.
type FileStore struct {
	fs afero.Fs
}

func NewFileStore(fsys afero.Fs, root string) *FileStore {
	if root != "" {
		fsys = afero.NewBasePathFs(fsys, root)
	}
	return &FileStore{fs: fsys}
}

func (s *FileStore) Store(_ context.Context, token string, data []byte) (string, error) {
	key := ArtifactKey(token)
	if err := s.write(key, data); err != nil {
		return "", &apperr.StorageError{Op: "store", Err: err}
	}
	return key, nil
}

func (s *FileStore) Retrieve(_ context.Context, ref string) ([]byte, error) {
	return s.read(ref, "artifact")
}

func (s *FileStore) UploadTemplate(_ context.Context, templateID uint, data []byte) (string, error) {
	key := templateKey(templateID)
	if err := s.write(key, data); err != nil {
		return "", &apperr.StorageError{Op: "upload template", Err: err}
	}
	return key, nil
}

func (s *FileStore) Blob(_ context.Context, key string) ([]byte, error) {
	return s.read(key, "template blob")
}

func (s *FileStore) write(key string, data []byte) error {
	if err := s.fs.MkdirAll(path.Dir(key), 0o750); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, key, data, 0o640)
}

func (s *FileStore) read(key, what string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %s: %w", what, key, apperr.ErrNotFound)
		}
		return nil, &apperr.StorageError{Op: "read", Err: err}
	}
	return data, nil
}
