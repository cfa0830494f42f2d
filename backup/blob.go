package backup

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBackupNotFound is returned when a named artifact does not exist.
var ErrBackupNotFound = errors.New("backup not found")

// BlobStore is where backup artifacts live. The local implementation writes
// to a directory; an object-storage implementation satisfies the same
// interface without touching the service.
type BlobStore interface {
	Upload(name string, data []byte) error
	Download(name string) ([]byte, error)
	List() ([]string, error)
	Delete(name string) error
}

// LocalBlobStore keeps artifacts as files under a single directory.
type LocalBlobStore struct {
	dir string
}

func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalBlobStore{dir: dir}, nil
}

// path rejects names that escape the backup directory.
func (s *LocalBlobStore) path(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return "", ErrBackupNotFound
	}
	return filepath.Join(s.dir, name), nil
}

func (s *LocalBlobStore) Upload(name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *LocalBlobStore) Download(name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBackupNotFound
	}
	return data, err
}

func (s *LocalBlobStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalBlobStore) Delete(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, os.ErrNotExist) {
		return ErrBackupNotFound
	}
	return err
}
