package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type QuestionUsageRepository struct {
	DB *gorm.DB
}

func NewQuestionUsageRepository(db *gorm.DB) *QuestionUsageRepository {
	return &QuestionUsageRepository{DB: db}
}

func (r *QuestionUsageRepository) Create(ctx context.Context, u *model.QuestionUsage) error {
	return Session(ctx, r.DB).Create(u).Error
}

func (r *QuestionUsageRepository) AddAttempt(ctx context.Context, a *model.QuestionAttempt) error {
	return Session(ctx, r.DB).Create(a).Error
}

// Delete removes a usage and the question attempts recorded against it.
func (r *QuestionUsageRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := conn(ctx, r.DB, tx)
	if err := db.Where("questionusageid = ?", id).Delete(&model.QuestionAttempt{}).Error; err != nil {
		return fmt.Errorf("delete question attempts of usage %d: %w", id, err)
	}
	if err := db.Delete(&model.QuestionUsage{}, id).Error; err != nil {
		return fmt.Errorf("delete question usage %d: %w", id, err)
	}
	return nil
}

func (r *QuestionUsageRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := Session(ctx, r.DB).Model(&model.QuestionUsage{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
