package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage manages the flat-file data directory. Users live in a single
// users.json at the root; each user owns a subdirectory with favorites.json
// and battles.json.
type Storage struct {
	basePath string
}

// NewStorage creates the storage handle and ensures the data directory exists
func NewStorage(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{basePath: basePath}, nil
}

// BasePath returns the root of the data directory
func (s *Storage) BasePath() string {
	return s.basePath
}

// UserFile returns the path of a file inside a user's data directory
func (s *Storage) UserFile(userID, filename string) string {
	return filepath.Join(s.basePath, userID, filename)
}

// RootFile returns the path of a file at the data directory root
func (s *Storage) RootFile(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// EnsureUserDir creates the per-user data directory if missing
func (s *Storage) EnsureUserDir(userID string) error {
	dir := filepath.Join(s.basePath, userID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create user directory: %w", err)
	}
	return nil
}

// ReadJSON decodes the file at path into out. Returns os.ErrNotExist
// (wrapped) when the file does not exist; callers decide the default.
func (s *Storage) ReadJSON(path string, out interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// WriteJSON encodes v and writes it to path via a temp-file rename so a
// crashed write never leaves a truncated file behind.
func (s *Storage) WriteJSON(path string, v interface{}) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// Exists reports whether the file at path exists
func (s *Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
