package repository

import (
	"adaptivequiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) Assign(ctx context.Context, userID, courseID uint, role model.RoleName) error {
	ra := &model.RoleAssignment{
		UserID:       userID,
		CourseID:     courseID,
		Role:         role,
		TimeModified: model.UnixNow(),
	}
	return Session(ctx, r.DB).Create(ra).Error
}

// FindRoles returns the roles a user holds in a course.
func (r *RoleRepository) FindRoles(ctx context.Context, userID, courseID uint) ([]model.RoleName, error) {
	var roles []model.RoleName
	err := Session(ctx, r.DB).Model(&model.RoleAssignment{}).
		Where("userid = ? AND courseid = ?", userID, courseID).
		Pluck("role", &roles).Error
	return roles, err
}
