package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fwojciec/resumekit"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Ensure KeyValueStore implements resumekit.KeyValueStore at compile time.
var _ resumekit.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore keeps each key in its own file, dir/<key>.json. Writes are
// atomic renames.
type KeyValueStore struct {
	dir string
	mu  sync.RWMutex
}

// NewKeyValueStore creates a KeyValueStore rooted at dir.
func NewKeyValueStore(dir string) *KeyValueStore {
	return &KeyValueStore{dir: dir}
}

func (s *KeyValueStore) path(key string) (string, error) {
	if !keyRe.MatchString(key) || key == "." || key == ".." {
		return "", resumekit.Errorf(resumekit.EINVALID, "invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the value stored under key.
func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// Set stores value under key.
func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(value), 0600)
}

// Clear removes key. Clearing a missing key is not an error.
func (s *KeyValueStore) Clear(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
