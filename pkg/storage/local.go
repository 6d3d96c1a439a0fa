package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const publicPrefix = "/static/"

type localStorage struct {
	root string
}

// NewLocalStorage stores files on disk under root/<area>/ and references them
// as /static/<area>/<key>.
func NewLocalStorage(root string) (FileStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return &localStorage{root: root}, nil
}

func (s *localStorage) Save(ctx context.Context, r io.Reader, area, fileName string) (string, error) {
	if !validArea(area) {
		return "", fmt.Errorf("unknown storage area %q", area)
	}
	if err := ValidateFileName(fileName); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, area)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	key := StorageKey(fileName)
	dst, err := os.OpenFile(filepath.Join(dir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return publicPrefix + path.Join(area, key), nil
}

func (s *localStorage) Delete(ctx context.Context, fileURL string) error {
	p, err := s.resolve(fileURL)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *localStorage) Open(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	p, err := s.resolve(fileURL)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// resolve maps a /static/<area>/<key> reference back to a path under root,
// refusing anything that would escape it.
func (s *localStorage) resolve(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, publicPrefix) {
		return "", fmt.Errorf("not a local file reference: %s", fileURL)
	}
	rel := path.Clean(strings.TrimPrefix(fileURL, publicPrefix))
	parts := strings.SplitN(rel, "/", 2)
	if len(parts) != 2 || !validArea(parts[0]) || strings.Contains(parts[1], "/") || parts[1] == ".." {
		return "", fmt.Errorf("invalid file reference: %s", fileURL)
	}
	return filepath.Join(s.root, parts[0], parts[1]), nil
}
