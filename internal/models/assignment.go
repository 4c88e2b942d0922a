package models

import "time"

// Assignment difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Submission status values.
const (
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
	StatusLate      = "late"
)

// Assignment is a lab exercise published by a faculty member against one of
// the eight lab modules.
type Assignment struct {
	ID           string    `gorm:"primaryKey;size:64"` // UUID
	Title        string    `gorm:"size:128;not null"`
	Description  string    `gorm:"size:1024;not null"`
	LabModule    string    `gorm:"size:32;index;not null"`
	Difficulty   string    `gorm:"size:16;not null"`
	Points       int       `gorm:"not null"`
	DueDate      time.Time `gorm:"index;not null"`
	CreatedBy    string    `gorm:"size:64;index;not null"`
	Instructions string    `gorm:"type:text"`
	Resources    string    `gorm:"type:text"` // newline separated
	IsActive     bool      `gorm:"index;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Submission is a student's answer to an assignment. A student has at most
// one submission per assignment; resubmitting replaces the previous one.
type Submission struct {
	ID           string     `gorm:"primaryKey;size:64"` // UUID
	AssignmentID string     `gorm:"index;size:64;not null"`
	Student      string     `gorm:"index;size:64;not null"`
	SubmittedAt  time.Time  `gorm:"not null"`
	Content      string     `gorm:"type:text"`
	Status       string     `gorm:"size:16;index;not null"`
	Grade        *int
	Feedback     string     `gorm:"size:1024"`
	GradedBy     string     `gorm:"size:64"`
	GradedAt     *time.Time

	Assignment Assignment `gorm:"constraint:OnDelete:CASCADE"`
}
