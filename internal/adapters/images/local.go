package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"devevent/internal/domain"
)

// LocalURLPrefix is where the HTTP router serves the local upload directory.
const LocalURLPrefix = "/uploads"

type localStore struct {
	root string
}

// NewLocalStore returns an ImageStore writing files under root.
func NewLocalStore(root string) domain.ImageStore {
	return &localStore{root: root}
}

func (s *localStore) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	p, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return LocalURLPrefix + "/" + key, nil
}

func (s *localStore) Delete(_ context.Context, key string) error {
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func (s *localStore) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
