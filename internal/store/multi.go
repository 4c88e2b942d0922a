package store

import (
	"errors"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
)

// Multi layers several stores into one directory. Lookups try each store in
// order; the first store wins on duplicate usernames, which keeps the
// file-provisioned accounts authoritative over self-registered ones.
type Multi struct {
	stores []UserStore
}

func NewMulti(stores ...UserStore) *Multi {
	return &Multi{stores: stores}
}

func (m *Multi) FindByUsername(username string) (*models.User, error) {
	for _, s := range m.stores {
		u, err := s.FindByUsername(username)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (m *Multi) List() ([]models.User, error) {
	seen := make(map[string]bool)
	var out []models.User
	for _, s := range m.stores {
		users, err := s.List()
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if seen[u.Username] {
				continue
			}
			seen[u.Username] = true
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Multi) CountByRole(role string) (int64, error) {
	users, err := m.List()
	if err != nil {
		return 0, err
	}
	var n int64
	for _, u := range users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
