// Package store provides the user directory backing the authenticator. Two
// implementations exist: a read-only JSON file for small deployments and a
// database-backed store used when self-registration is enabled.
package store

import (
	"errors"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
)

var (
	// ErrNotFound means no user with the given username exists.
	ErrNotFound = errors.New("store: user not found")
	// ErrUnavailable means the underlying storage could not be read.
	ErrUnavailable = errors.New("store: storage unavailable")
)

// UserStore is the read contract the authenticator and dashboards depend on.
// Usernames match case-insensitively everywhere.
type UserStore interface {
	FindByUsername(username string) (*models.User, error)
	List() ([]models.User, error)
	CountByRole(role string) (int64, error)
}
