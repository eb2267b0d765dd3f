package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type AdaptiveQuizRepository struct {
	DB *gorm.DB
}

func NewAdaptiveQuizRepository(db *gorm.DB) *AdaptiveQuizRepository {
	return &AdaptiveQuizRepository{DB: db}
}

func (r *AdaptiveQuizRepository) Create(ctx context.Context, tx *gorm.DB, q *model.AdaptiveQuiz) error {
	if err := conn(ctx, r.DB, tx).Create(q).Error; err != nil {
		return fmt.Errorf("insert adaptivequiz: %w", err)
	}
	return nil
}

// Update writes every column of q except the creation time.
func (r *AdaptiveQuizRepository) Update(ctx context.Context, tx *gorm.DB, q *model.AdaptiveQuiz) error {
	err := conn(ctx, r.DB, tx).Model(q).Select("*").Omit("id", "timecreated").Updates(q).Error
	if err != nil {
		return fmt.Errorf("update adaptivequiz %d: %w", q.ID, err)
	}
	return nil
}

func (r *AdaptiveQuizRepository) FindByID(ctx context.Context, id uint) (*model.AdaptiveQuiz, error) {
	var q model.AdaptiveQuiz
	if err := Session(ctx, r.DB).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *AdaptiveQuizRepository) FindByCourse(ctx context.Context, courseID uint) ([]model.AdaptiveQuiz, error) {
	var qs []model.AdaptiveQuiz
	err := Session(ctx, r.DB).Where("course = ?", courseID).Order("id ASC").Find(&qs).Error
	return qs, err
}

func (r *AdaptiveQuizRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := conn(ctx, r.DB, tx).Delete(&model.AdaptiveQuiz{}, id).Error; err != nil {
		return fmt.Errorf("delete adaptivequiz %d: %w", id, err)
	}
	return nil
}

func (r *AdaptiveQuizRepository) HasCategories(ctx context.Context, tx *gorm.DB, instance uint) (bool, error) {
	var count int64
	err := conn(ctx, r.DB, tx).Model(&model.QuestionCategoryAssociation{}).
		Where("instance = ?", instance).
		Count(&count).Error
	return count > 0, err
}

func (r *AdaptiveQuizRepository) ListCategories(ctx context.Context, instance uint) ([]uint, error) {
	var ids []uint
	err := Session(ctx, r.DB).Model(&model.QuestionCategoryAssociation{}).
		Where("instance = ?", instance).
		Order("id ASC").
		Pluck("questioncategory", &ids).Error
	return ids, err
}

func (r *AdaptiveQuizRepository) InsertCategory(ctx context.Context, tx *gorm.DB, instance, category uint) error {
	a := &model.QuestionCategoryAssociation{Instance: instance, QuestionCategory: category}
	if err := conn(ctx, r.DB, tx).Create(a).Error; err != nil {
		return fmt.Errorf("insert question category %d for instance %d: %w", category, instance, err)
	}
	return nil
}

func (r *AdaptiveQuizRepository) DeleteCategories(ctx context.Context, tx *gorm.DB, instance uint) error {
	err := conn(ctx, r.DB, tx).Where("instance = ?", instance).Delete(&model.QuestionCategoryAssociation{}).Error
	if err != nil {
		return fmt.Errorf("delete question categories of instance %d: %w", instance, err)
	}
	return nil
}

// CourseInstance is an instance joined with the course module that
// places it in a course.
type CourseInstance struct {
	model.AdaptiveQuiz
	CourseModule uint `gorm:"column:coursemodule"`
	Section      int  `gorm:"column:section"`
	Visible      bool `gorm:"column:visible"`
}

// ListInCourse returns the instances placed in a course, in section order.
func (r *AdaptiveQuizRepository) ListInCourse(ctx context.Context, courseID uint, includeHidden bool) ([]CourseInstance, error) {
	q := Session(ctx, r.DB).
		Table("adaptivequiz AS a").
		Select("a.*, cm.id AS coursemodule, cm.sectionnum AS section, cm.visible AS visible").
		Joins("JOIN course_modules cm ON cm.instance = a.id AND cm.modname = ?", model.ModuleName).
		Where("cm.course = ? AND cm.deletioninprogress = ?", courseID, false)
	if !includeHidden {
		q = q.Where("cm.visible = ?", true)
	}

	var rows []CourseInstance
	err := q.Order("cm.sectionnum ASC, cm.id ASC").Scan(&rows).Error
	return rows, err
}
