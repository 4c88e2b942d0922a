package models

import "time"

// Role values. The portal only distinguishes faculty from students.
const (
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleFaculty || r == RoleStudent
}

// User represents a portal account. Accounts are normally provisioned
// out-of-band through data/users.json and never mutated by the running
// process; rows in this table only exist when self-registration is enabled.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"password"`
	Role         string    `gorm:"size:16;index;not null" json:"role"`
	FullName     string    `gorm:"size:64" json:"full_name"`
	Email        string    `gorm:"size:128" json:"email"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
