// Package stats aggregates the numbers shown on the dashboards.
package stats

import (
	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"

	"gorm.io/gorm"
)

// Service reads dashboard data. The user directory supplies counts, the
// database supplies activity and assignment figures.
type Service struct {
	users store.UserStore
	db    *gorm.DB
}

func NewService(users store.UserStore, db *gorm.DB) *Service {
	return &Service{users: users, db: db}
}

// FacultyStats is the header block of the faculty dashboard.
type FacultyStats struct {
	Students          int64
	Faculty           int64
	LabModules        int
	ActiveAssignments int64
	Submissions       int64
}

func (s *Service) Faculty() (FacultyStats, error) {
	var out FacultyStats
	var err error

	if out.Students, err = s.users.CountByRole(models.RoleStudent); err != nil {
		return out, err
	}
	if out.Faculty, err = s.users.CountByRole(models.RoleFaculty); err != nil {
		return out, err
	}
	out.LabModules = lab.Count()

	if err = s.db.Model(&models.Assignment{}).
		Where("is_active = ?", true).Count(&out.ActiveAssignments).Error; err != nil {
		return out, err
	}
	err = s.db.Model(&models.Submission{}).Count(&out.Submissions).Error
	return out, err
}

// RecentActivity returns the newest audit records for the activity feed.
func (s *Service) RecentActivity(limit int) ([]models.AuditRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var recs []models.AuditRecord
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&recs).Error
	return recs, err
}

// StudentInfo is a directory row without credential material.
type StudentInfo struct {
	Username string
	FullName string
	Email    string
}

// StudentList returns all students for the faculty dashboard roster.
func (s *Service) StudentList() ([]StudentInfo, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	var out []StudentInfo
	for _, u := range users {
		if u.Role != models.RoleStudent {
			continue
		}
		out = append(out, StudentInfo{Username: u.Username, FullName: u.FullName, Email: u.Email})
	}
	return out, nil
}

// QuickAction is a shortcut card on the faculty dashboard.
type QuickAction struct {
	Label string
	Path  string
	Icon  string
}

// QuickActions returns the fixed shortcut set.
func QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Create Assignment", Path: "/faculty/assignments/create", Icon: "fas fa-plus"},
		{Label: "View Assignments", Path: "/faculty/assignments", Icon: "fas fa-tasks"},
		{Label: "Export Gradebook", Path: "/faculty/export/gradebook.xlsx", Icon: "fas fa-file-excel"},
	}
}
