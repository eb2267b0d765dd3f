package service

import (
	"adaptivequiz/internal/repository"
	"context"

	"gorm.io/gorm"
)

// QuestionEngine is the part of the question subsystem this module
// calls into: removing the usage record behind an attempt.
type QuestionEngine struct {
	UsageRepo *repository.QuestionUsageRepository
}

func NewQuestionEngine(usageRepo *repository.QuestionUsageRepository) *QuestionEngine {
	return &QuestionEngine{UsageRepo: usageRepo}
}

func (e *QuestionEngine) DeleteUsage(ctx context.Context, tx *gorm.DB, usageID uint) error {
	return e.UsageRepo.Delete(ctx, tx, usageID)
}
