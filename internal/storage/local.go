package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore is a Store that keeps objects on the local filesystem. The
// directory is expected to be served under the public URL.
type LocalStore struct {
	PublicURL
	root string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates a new LocalStore.
func NewLocalStore(root, publicURL string) *LocalStore {
	return &LocalStore{
		PublicURL: NewPublicURL(publicURL),
		root:      root,
	}
}

// Root returns the directory objects are written to.
func (l *LocalStore) Root() string {
	return l.root
}

// Put implements Store.
func (l *LocalStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	name, err := l.fixPath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(name), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("failed to copy data to file %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close file %s: %w", key, err)
	}

	return l.URL(key), nil
}

// Delete implements Store.
func (l *LocalStore) Delete(_ context.Context, key string) error {
	name, err := l.fixPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove file %s: %w", key, ErrObjectNotFound)
		}
		return fmt.Errorf("failed to remove file %s: %w", key, err)
	}
	return nil
}

// fixPath maps a slash separated key below root and refuses keys escaping it.
func (l *LocalStore) fixPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) || clean == ".." {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
