package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return Session(ctx, r.DB).Create(c).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var c model.Course
	if err := Session(ctx, r.DB).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) CreateModule(ctx context.Context, tx *gorm.DB, cm *model.CourseModule) error {
	if err := conn(ctx, r.DB, tx).Create(cm).Error; err != nil {
		return fmt.Errorf("insert course module: %w", err)
	}
	return nil
}

// ListModules returns the live course modules of a course.
func (r *CourseRepository) ListModules(ctx context.Context, courseID uint) ([]model.CourseModule, error) {
	var cms []model.CourseModule
	err := Session(ctx, r.DB).
		Where("course = ? AND deletioninprogress = ?", courseID, false).
		Order("sectionnum ASC, id ASC").
		Find(&cms).Error
	return cms, err
}

func (r *CourseRepository) FindModuleByInstance(ctx context.Context, modName string, instance uint) (*model.CourseModule, error) {
	var cm model.CourseModule
	err := Session(ctx, r.DB).
		Where("modname = ? AND instance = ?", modName, instance).
		First(&cm).Error
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// UpdateModuleSettings writes the display settings of a course module.
func (r *CourseRepository) UpdateModuleSettings(ctx context.Context, cm *model.CourseModule) error {
	return Session(ctx, r.DB).Model(cm).
		Select("visible", "groupmode", "groupingid", "section", "sectionnum").
		Updates(cm).Error
}

func (r *CourseRepository) DeleteModule(ctx context.Context, tx *gorm.DB, id uint) error {
	if err := conn(ctx, r.DB, tx).Delete(&model.CourseModule{}, id).Error; err != nil {
		return fmt.Errorf("delete course module %d: %w", id, err)
	}
	return nil
}
