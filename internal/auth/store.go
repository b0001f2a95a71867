package auth

import (
	"os"
	"strings"
)

// TokenStore persists the most recent session token. One active session
// per machine: each login overwrites the previous token.
type TokenStore interface {
	Save(token string) error
	// Load returns the stored token, or "" when none is stored. A missing
	// store is not an error.
	Load() (string, error)
	Clear() error
}

// FileTokenStore keeps the token in a single local file (`.token` by
// default), matching the fixed-location artifact of the product.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear truncates the file rather than deleting it, like the logout of
// the original product.
func (s *FileTokenStore) Clear() error {
	err := os.WriteFile(s.path, nil, 0o600)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
