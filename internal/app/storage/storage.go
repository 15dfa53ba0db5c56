/*
Package storage persists the client's credentials: the bearer token and the
cached user snapshot.

Both live in one JSON file under the user's config directory and are always
cleared together. The snapshot is a cache for instant display after restart,
not a source of truth; the session store refreshes it from the backend.
*/
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"alegarazh/internal/app/model"
	"alegarazh/internal/pkg/logx"
)

// Store is the persistence interface the gateway and session store depend on.
type Store interface {
	// Token returns the persisted bearer token, empty when absent.
	Token() string

	// SaveToken persists the bearer token.
	SaveToken(token string) error

	// User returns the cached user snapshot, nil when absent.
	User() *model.User

	// SaveUser persists the user snapshot.
	SaveUser(user *model.User) error

	// Clear removes the token and the user snapshot together.
	Clear() error
}

// credentials is the on-disk file format.
type credentials struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

// FileStore implements Store on a single JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the per-user credentials file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "alegarazh", "credentials.json"), nil
}

// NewFileStore creates a FileStore at path; an empty path selects DefaultPath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credentials dir: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Token returns the persisted bearer token, empty when absent.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Token
}

// SaveToken persists the token, keeping the user snapshot intact.
func (s *FileStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.Token = token
	return s.save(creds)
}

// User returns the cached user snapshot, nil when absent.
func (s *FileStore) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().User
}

// SaveUser persists the user snapshot, keeping the token intact.
func (s *FileStore) SaveUser(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := s.load()
	creds.User = user
	return s.save(creds)
}

// Clear removes the credentials file, dropping token and snapshot together.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *FileStore) load() credentials {
	var creds credentials

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logx.Warn("failed to read credentials file", "path", s.path, "error", err)
		}
		return creds
	}

	if err := json.Unmarshal(data, &creds); err != nil {
		// A corrupt file is treated as no credentials at all.
		logx.Warn("failed to parse credentials file", "path", s.path, "error", err)
		return credentials{}
	}

	return creds
}

// save writes atomically: a rename never leaves a half-written file behind.
func (s *FileStore) save(creds credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}

	return nil
}
