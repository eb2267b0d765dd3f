package repository

import (
	"adaptivequiz/internal/model"
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return Session(ctx, r.DB).Create(a).Error
}

func (r *AttemptRepository) FindByInstance(ctx context.Context, tx *gorm.DB, instance uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := conn(ctx, r.DB, tx).Where("instance = ?", instance).Order("id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) DeleteByInstance(ctx context.Context, tx *gorm.DB, instance uint) error {
	err := conn(ctx, r.DB, tx).Where("instance = ?", instance).Delete(&model.Attempt{}).Error
	if err != nil {
		return fmt.Errorf("delete attempts of instance %d: %w", instance, err)
	}
	return nil
}

// LatestByUser returns the most recently modified attempt of a user, or
// nil when there is none.
func (r *AttemptRepository) LatestByUser(ctx context.Context, instance, userID uint) (*model.Attempt, error) {
	var attempts []model.Attempt
	err := Session(ctx, r.DB).
		Where("instance = ? AND userid = ?", instance, userID).
		Order("timemodified DESC, id DESC").
		Limit(1).
		Find(&attempts).Error
	if err != nil || len(attempts) == 0 {
		return nil, err
	}
	return &attempts[0], nil
}

// RecentAttemptFilter selects attempts for the recent activity report.
// Zero UserID or GroupID means no restriction.
type RecentAttemptFilter struct {
	Instance  uint
	TimeStart int64
	UserID    uint
	GroupID   uint
}

// RecentAttemptRow is an attempt joined with its owner's display fields.
type RecentAttemptRow struct {
	model.Attempt
	FirstName string `gorm:"column:firstname"`
	LastName  string `gorm:"column:lastname"`
	Email     string `gorm:"column:email"`
	Picture   uint   `gorm:"column:picture"`
	ImageAlt  string `gorm:"column:imagealt"`
}

// RecentRows opens a cursor over attempts modified after f.TimeStart,
// oldest first. The caller must close the rows.
func (r *AttemptRepository) RecentRows(ctx context.Context, f RecentAttemptFilter) (*sql.Rows, error) {
	q := Session(ctx, r.DB).
		Table("adaptivequiz_attempt AS aa").
		Select("aa.*, u.firstname, u.lastname, u.email, u.picture, u.imagealt").
		Joins("JOIN users u ON u.id = aa.userid")
	if f.GroupID != 0 {
		q = q.Joins("JOIN groups_members gm ON gm.userid = u.id").
			Where("gm.groupid = ?", f.GroupID)
	}
	q = q.Where("aa.timemodified > ? AND aa.instance = ?", f.TimeStart, f.Instance)
	if f.UserID != 0 {
		q = q.Where("u.id = ?", f.UserID)
	}
	return q.Order("aa.timemodified ASC, aa.id ASC").Rows()
}

// ScanRow reads the current row of a RecentRows cursor.
func (r *AttemptRepository) ScanRow(rows *sql.Rows, dest *RecentAttemptRow) error {
	return r.DB.ScanRows(rows, dest)
}
