package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes uploads below a root directory that is served at a URL prefix.
type Store struct {
	root   string
	prefix string
}

func NewStore(root, urlPrefix string) *Store {
	return &Store{root: root, prefix: "/" + strings.Trim(urlPrefix, "/")}
}

// Save writes data under dir with a random name and returns its public reference.
func (s *Store) Save(dir, ext string, data []byte) (string, error) {
	target := filepath.Join(s.root, filepath.Clean("/"+dir))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.prefix + "/" + strings.Trim(filepath.ToSlash(filepath.Clean("/"+dir)), "/") + "/" + name, nil
}

// Remove deletes the file behind a reference returned by Save. A missing file is not an error.
func (s *Store) Remove(ref string) error {
	rel, ok := strings.CutPrefix(ref, s.prefix+"/")
	if !ok || rel == "" {
		return fmt.Errorf("media ref %q outside %s", ref, s.prefix)
	}
	err := os.Remove(filepath.Join(s.root, filepath.Clean("/"+filepath.FromSlash(rel))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}
