package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tokenFileName = "auth_token"

// FileStore persists a single bearer token on disk, one token per
// directory. Used by the CLI so a login survives across invocations.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created
// lazily on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns the per-user config directory for the CLI.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "directory-admin"), nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Save writes the token, replacing any previous one.
func (s *FileStore) Save(tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return errors.New("token is empty")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(tok+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Read returns the stored token, or "" when none has been saved.
func (s *FileStore) Read() (string, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Remove deletes the stored token. Removing an absent token is not an
// error; logout is idempotent.
func (s *FileStore) Remove() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// ReadValid returns the stored token only when it decodes and has not
// expired. Expired or undecodable tokens are discarded so the next
// login starts clean.
func (s *FileStore) ReadValid() (string, error) {
	tok, err := s.Read()
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", nil
	}
	if !IsValid(tok) {
		_ = s.Remove()
		return "", nil
	}
	return tok, nil
}
