package repository

import (
	"adaptivequiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return Session(ctx, r.DB).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := Session(ctx, r.DB).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
