package repository

import (
	"adaptivequiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type LogRepository struct {
	DB *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{DB: db}
}

func (r *LogRepository) Add(ctx context.Context, entry *model.LogEntry) error {
	if entry.Time == 0 {
		entry.Time = model.UnixNow()
	}
	return Session(ctx, r.DB).Create(entry).Error
}

func (r *LogRepository) FindByCourse(ctx context.Context, courseID uint) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	err := Session(ctx, r.DB).Where("course = ?", courseID).Order("id ASC").Find(&entries).Error
	return entries, err
}
