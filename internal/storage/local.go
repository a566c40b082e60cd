package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes files under a directory served at baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return key, nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	path, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(ref string) string {
	return joinURL(s.baseURL, ref)
}

// path resolves key inside dir and rejects anything escaping it.
func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	path := filepath.Join(s.dir, clean)
	root := filepath.Clean(s.dir) + string(filepath.Separator)
	if !strings.HasPrefix(path, root) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return path, nil
}
