package models

import "time"

// AuditRecord mirrors security-relevant events into the database so the
// faculty dashboard can show recent activity. The append-only log files
// written by the file sink remain the system of record.
type AuditRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Actor     string    `gorm:"size:64;index;not null"` // username or "anonymous"
	Kind      string    `gorm:"size:32;index;not null"`
	Detail    string    `gorm:"size:1024"`
	IP        string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index"`
}
