package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
)

func writeUsersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write users file: %v", err)
	}
	return path
}

const sampleUsers = `{
  "users": [
    {"username": "Faculty1", "password": "s$h", "role": "faculty", "full_name": "Anita Rao"},
    {"username": "student1", "password": "s$h", "role": "student", "full_name": "Priya Sharma"},
    {"username": "student2", "password": "s$h", "role": "student"}
  ]
}`

func TestNewFileStore(t *testing.T) {
	fs, err := NewFileStore(writeUsersFile(t, sampleUsers))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	users, err := fs.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("List() len = %d, want 3", len(users))
	}
	// file order is preserved
	if users[0].FullName != "Anita Rao" {
		t.Errorf("first user = %q, want faculty entry", users[0].Username)
	}
}

func TestFileStore_FindByUsername(t *testing.T) {
	fs, err := NewFileStore(writeUsersFile(t, sampleUsers))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	u, err := fs.FindByUsername("student1")
	if err != nil {
		t.Fatalf("FindByUsername(student1) error = %v", err)
	}
	if u.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", u.Role)
	}

	// lookups are case-insensitive and tolerate surrounding whitespace
	if _, err := fs.FindByUsername("FACULTY1"); err != nil {
		t.Errorf("FindByUsername(FACULTY1) error = %v, want nil", err)
	}
	if _, err := fs.FindByUsername("  student2  "); err != nil {
		t.Errorf("FindByUsername with spaces error = %v, want nil", err)
	}

	_, err = fs.FindByUsername("nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByUsername(nobody) error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_CountByRole(t *testing.T) {
	fs, err := NewFileStore(writeUsersFile(t, sampleUsers))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	students, _ := fs.CountByRole(models.RoleStudent)
	if students != 2 {
		t.Errorf("CountByRole(student) = %d, want 2", students)
	}
	faculty, _ := fs.CountByRole(models.RoleFaculty)
	if faculty != 1 {
		t.Errorf("CountByRole(faculty) = %d, want 1", faculty)
	}
}

func TestNewFileStore_MissingFile(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestNewFileStore_InvalidContent(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"users": [`},
		{"missing password", `{"users": [{"username": "a1b", "role": "student"}]}`},
		{"unknown role", `{"users": [{"username": "a1b", "password": "s$h", "role": "admin"}]}`},
		{"duplicate username", `{"users": [
			{"username": "dup", "password": "s$h", "role": "student"},
			{"username": "DUP", "password": "s$h", "role": "faculty"}
		]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFileStore(writeUsersFile(t, tc.content))
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("error = %v, want ErrUnavailable", err)
			}
		})
	}
}
