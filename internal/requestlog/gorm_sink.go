package requestlog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tixmarket/pkg/logger"
)

// GormSink stores entries in the request_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Name() string { return "database" }

func (s *GormSink) Write(ctx context.Context, entry Entry) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Create(&entry).Error
	logger.GetDefault().LogDBQuery(ctx, "insert request_logs", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, oldest first.
func (s *GormSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load request logs: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (s *GormSink) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear request logs: %w", err)
	}
	return nil
}

// Close leaves the connection open; it is owned by the database package.
func (s *GormSink) Close() error { return nil }
