package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"

	"gorm.io/gorm"
)

// DBStore keeps users in the relational database. It satisfies the same
// read contract as FileStore and additionally supports account creation for
// the registration feature.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &user, nil
}

func (s *DBStore) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return users, nil
}

func (s *DBStore) CountByRole(role string) (int64, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

// Create inserts a new user. ErrExists is returned when the username is
// already taken (case-insensitive).
var ErrExists = errors.New("store: username already exists")

func (s *DBStore) Create(user *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", user.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count > 0 {
		return ErrExists
	}
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
