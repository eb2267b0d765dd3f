package repository

import (
	"adaptivequiz/internal/model"
	"context"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

func (r *GroupRepository) Create(ctx context.Context, g *model.Group) error {
	return Session(ctx, r.DB).Create(g).Error
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uint) error {
	m := &model.GroupMember{GroupID: groupID, UserID: userID, TimeAdded: model.UnixNow()}
	return Session(ctx, r.DB).Create(m).Error
}

func (r *GroupRepository) AddToGrouping(ctx context.Context, groupingID, groupID uint) error {
	gg := &model.GroupingGroup{GroupingID: groupingID, GroupID: groupID}
	return Session(ctx, r.DB).Create(gg).Error
}

// Membership is one group a user belongs to, paired with a grouping
// that contains it (0 when the group is in no grouping).
type Membership struct {
	GroupID    uint `gorm:"column:groupid"`
	GroupingID uint `gorm:"column:groupingid"`
}

// FindMemberships returns every (group, grouping) pair for a user's
// groups in a course.
func (r *GroupRepository) FindMemberships(ctx context.Context, courseID, userID uint) ([]Membership, error) {
	var rows []Membership
	err := Session(ctx, r.DB).
		Table("groups_members AS gm").
		Select("gm.groupid AS groupid, COALESCE(gg.groupingid, 0) AS groupingid").
		Joins("JOIN course_groups g ON g.id = gm.groupid").
		Joins("LEFT JOIN groupings_groups gg ON gg.groupid = gm.groupid").
		Where("g.courseid = ? AND gm.userid = ?", courseID, userID).
		Order("gm.groupid ASC").
		Scan(&rows).Error
	return rows, err
}

// FindUserGroups returns the groups of a course a user is a member of,
// restricted to one grouping when groupingID is not zero.
func (r *GroupRepository) FindUserGroups(ctx context.Context, courseID, userID, groupingID uint) ([]model.Group, error) {
	q := Session(ctx, r.DB).
		Model(&model.Group{}).
		Joins("JOIN groups_members gm ON gm.groupid = course_groups.id").
		Where("course_groups.courseid = ? AND gm.userid = ?", courseID, userID)
	if groupingID != 0 {
		q = q.Joins("JOIN groupings_groups gg ON gg.groupid = course_groups.id").
			Where("gg.groupingid = ?", groupingID)
	}

	var groups []model.Group
	err := q.Distinct("course_groups.*").Order("course_groups.id ASC").Find(&groups).Error
	return groups, err
}
