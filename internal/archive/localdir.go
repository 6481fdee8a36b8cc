package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalDir archives documents under a base directory
type LocalDir struct {
	base string
}

// NewLocalDir creates the base directory if needed
func NewLocalDir(base string) (*LocalDir, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &LocalDir{base: base}, nil
}

func (l *LocalDir) path(key string) string {
	return filepath.Join(l.base, filepath.FromSlash(key))
}

func (l *LocalDir) Put(ctx context.Context, key string, html []byte) error {
	p := l.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating archive subdirectory: %w", err)
	}
	return os.WriteFile(p, html, 0644)
}

func (l *LocalDir) Get(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(l.path(key))
}

func (l *LocalDir) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	err := filepath.Walk(l.base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.base, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return keys, err
}
