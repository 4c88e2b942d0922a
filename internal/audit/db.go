package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"

	"gorm.io/gorm"
)

// DBSink mirrors audit records into the database so dashboards can query
// recent activity. Rows are insert-only; nothing in the portal updates or
// deletes them.
type DBSink struct {
	db *gorm.DB
}

func NewDBSink(db *gorm.DB) *DBSink {
	return &DBSink{db: db}
}

func (s *DBSink) Record(ctx context.Context, rec Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Actor == "" {
		rec.Actor = "anonymous"
	}
	row := models.AuditRecord{
		Actor:     rec.Actor,
		Kind:      rec.Kind,
		Detail:    rec.Detail,
		IP:        rec.IP,
		UserAgent: rec.UserAgent,
		CreatedAt: rec.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("%w: insert: %v", ErrUnavailable, err)
	}
	return nil
}
