// Package assignment manages lab assignments and student submissions.
package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/lab"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an assignment or submission does not exist.
var ErrNotFound = errors.New("assignment: not found")

// Manager persists assignments and submissions.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// CreateInput is the validated form for a new assignment.
type CreateInput struct {
	Title        string
	Description  string
	LabModule    string
	Difficulty   string
	Points       int
	DueDays      int
	CreatedBy    string
	Instructions string
	Resources    []string
}

func (in *CreateInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("title and description are required")
	}
	if !lab.ValidSlug(in.LabModule) {
		return fmt.Errorf("unknown lab module %q", in.LabModule)
	}
	switch in.Difficulty {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		return fmt.Errorf("difficulty must be easy, medium or hard")
	}
	if in.Points < 1 || in.Points > 100 {
		return fmt.Errorf("points must be between 1 and 100")
	}
	if in.DueDays < 1 || in.DueDays > 365 {
		return fmt.Errorf("due days must be between 1 and 365")
	}
	return nil
}

// Create validates and stores a new assignment.
func (m *Manager) Create(in CreateInput) (*models.Assignment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &models.Assignment{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		LabModule:    in.LabModule,
		Difficulty:   in.Difficulty,
		Points:       in.Points,
		DueDate:      now.AddDate(0, 0, in.DueDays),
		CreatedBy:    in.CreatedBy,
		Instructions: strings.TrimSpace(in.Instructions),
		Resources:    strings.Join(in.Resources, "\n"),
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := m.db.Create(a).Error; err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return a, nil
}

// Get returns one assignment by id.
func (m *Manager) Get(id string) (*models.Assignment, error) {
	var a models.Assignment
	if err := m.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Active returns all open assignments, newest first.
func (m *Manager) Active() ([]models.Assignment, error) {
	var out []models.Assignment
	err := m.db.Where("is_active = ?", true).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ByFaculty returns the assignments created by one faculty member.
func (m *Manager) ByFaculty(username string) ([]models.Assignment, error) {
	var out []models.Assignment
	err := m.db.Where("created_by = ?", username).Order("created_at DESC").Find(&out).Error
	return out, err
}

// Close deactivates an assignment. Only its creator may close it.
func (m *Manager) Close(id, faculty string) error {
	res := m.db.Model(&models.Assignment{}).
		Where("id = ? AND created_by = ?", id, faculty).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Submit stores a student's submission. Resubmitting replaces the previous
// content; submissions after the due date are marked late.
func (m *Manager) Submit(assignmentID, student, content string) (*models.Submission, error) {
	a, err := m.Get(assignmentID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, fmt.Errorf("assignment is closed")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("submission content is required")
	}

	now := time.Now()
	status := models.StatusSubmitted
	if now.After(a.DueDate) {
		status = models.StatusLate
	}

	var existing models.Submission
	err = m.db.Where("assignment_id = ? AND student = ?", assignmentID, student).
		First(&existing).Error
	switch {
	case err == nil:
		existing.Content = content
		existing.SubmittedAt = now
		existing.Status = status
		existing.Grade = nil
		existing.Feedback = ""
		existing.GradedBy = ""
		existing.GradedAt = nil
		if err := m.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("update submission: %w", err)
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		s := &models.Submission{
			ID:           uuid.NewString(),
			AssignmentID: assignmentID,
			Student:      student,
			SubmittedAt:  now,
			Content:      content,
			Status:       status,
		}
		if err := m.db.Create(s).Error; err != nil {
			return nil, fmt.Errorf("create submission: %w", err)
		}
		return s, nil
	default:
		return nil, err
	}
}

// Grade records a grade and feedback on a submission. The grade must stay
// within the assignment's maximum points.
func (m *Manager) Grade(submissionID, grader string, grade int, feedback string) (*models.Submission, error) {
	var s models.Submission
	if err := m.db.First(&s, "id = ?", submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a, err := m.Get(s.AssignmentID)
	if err != nil {
		return nil, err
	}
	if grade < 0 || grade > a.Points {
		return nil, fmt.Errorf("grade must be between 0 and %d", a.Points)
	}

	now := time.Now()
	s.Grade = &grade
	s.Feedback = strings.TrimSpace(feedback)
	s.GradedBy = grader
	s.GradedAt = &now
	s.Status = models.StatusGraded
	if err := m.db.Save(&s).Error; err != nil {
		return nil, fmt.Errorf("save grade: %w", err)
	}
	return &s, nil
}

// Submissions lists all submissions for one assignment.
func (m *Manager) Submissions(assignmentID string) ([]models.Submission, error) {
	var out []models.Submission
	err := m.db.Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").Find(&out).Error
	return out, err
}

// StudentSubmission returns the student's submission for one assignment, or
// ErrNotFound.
func (m *Manager) StudentSubmission(assignmentID, student string) (*models.Submission, error) {
	var s models.Submission
	err := m.db.Where("assignment_id = ? AND student = ?", assignmentID, student).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// StudentSubmissions lists everything one student has submitted.
func (m *Manager) StudentSubmissions(student string) ([]models.Submission, error) {
	var out []models.Submission
	err := m.db.Where("student = ?", student).
		Order("submitted_at DESC").Find(&out).Error
	return out, err
}

// StudentStats summarizes one student's progress across active assignments.
type StudentStats struct {
	Completed    int
	Pending      int
	AverageGrade int
	Progress     int // percent of active assignments submitted
}

func (m *Manager) StatsForStudent(student string) (StudentStats, error) {
	active, err := m.Active()
	if err != nil {
		return StudentStats{}, err
	}

	var stats StudentStats
	var totalGrade, gradedCount int
	for _, a := range active {
		sub, err := m.StudentSubmission(a.ID, student)
		if errors.Is(err, ErrNotFound) {
			stats.Pending++
			continue
		}
		if err != nil {
			return StudentStats{}, err
		}
		stats.Completed++
		if sub.Grade != nil {
			totalGrade += *sub.Grade
			gradedCount++
		}
	}
	if gradedCount > 0 {
		stats.AverageGrade = totalGrade / gradedCount
	}
	if len(active) > 0 {
		stats.Progress = stats.Completed * 100 / len(active)
	}
	return stats, nil
}
