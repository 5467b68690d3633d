package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"global-terrorism-dashboard/internal/model"
)

// ErrNoUser is returned by Load when nothing is stored.
var ErrNoUser = errors.New("no stored user")

// UserStorage persists the authenticated user between runs.
type UserStorage interface {
	Load() (model.User, error)
	Save(user model.User) error
	Remove() error
}

// FileStorage keeps the user as JSON in a single file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (model.User, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.User{}, ErrNoUser
	}
	if err != nil {
		return model.User{}, fmt.Errorf("read user: %w", err)
	}
	var user model.User
	if err := json.Unmarshal(b, &user); err != nil {
		return model.User{}, fmt.Errorf("decode user: %w", err)
	}
	if user.Token == "" {
		return model.User{}, ErrNoUser
	}
	return user, nil
}

func (s *FileStorage) Save(user model.User) error {
	b, err := json.MarshalIndent(user, "", " ")
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	return os.WriteFile(s.path, b, 0o600)
}

func (s *FileStorage) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}
