package store

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
)

// FileStore serves users from a JSON file of the form {"users": [...]}. The
// file is read once at construction and never mutated, so lookups need no
// locking.
type FileStore struct {
	byUsername map[string]models.User // keyed by lowercase username
	order      []string               // original file order
}

type usersFile struct {
	Users []models.User `json:"users"`
}

// NewFileStore loads the user directory from path. An unreadable or invalid
// file returns ErrUnavailable; the caller is expected to treat that as fatal
// at startup.
func NewFileStore(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}

	var doc usersFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, path, err)
	}

	fs := &FileStore{byUsername: make(map[string]models.User, len(doc.Users))}
	for _, u := range doc.Users {
		if u.Username == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("%w: %s: user entry missing username or password", ErrUnavailable, path)
		}
		if !models.ValidRole(u.Role) {
			return nil, fmt.Errorf("%w: %s: user %q has unknown role %q", ErrUnavailable, path, u.Username, u.Role)
		}
		key := strings.ToLower(u.Username)
		if _, dup := fs.byUsername[key]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate username %q", ErrUnavailable, path, u.Username)
		}
		fs.byUsername[key] = u
		fs.order = append(fs.order, key)
	}

	return fs, nil
}

func (fs *FileStore) FindByUsername(username string) (*models.User, error) {
	u, ok := fs.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (fs *FileStore) List() ([]models.User, error) {
	users := make([]models.User, 0, len(fs.order))
	for _, key := range fs.order {
		users = append(users, fs.byUsername[key])
	}
	return users, nil
}

func (fs *FileStore) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range fs.byUsername {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
