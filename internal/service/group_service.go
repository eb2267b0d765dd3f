package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"context"
)

type GroupService struct {
	GroupRepo *repository.GroupRepository
}

func NewGroupService(groupRepo *repository.GroupRepository) *GroupService {
	return &GroupService{GroupRepo: groupRepo}
}

// UserGroups returns the ids of a user's groups in a course keyed by
// grouping id. Key 0 holds every group the user belongs to.
func (s *GroupService) UserGroups(ctx context.Context, courseID, userID uint) (map[uint][]uint, error) {
	memberships, err := s.GroupRepo.FindMemberships(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	groups := map[uint][]uint{0: {}}
	seen := make(map[uint]bool)
	for _, m := range memberships {
		if !seen[m.GroupID] {
			seen[m.GroupID] = true
			groups[0] = append(groups[0], m.GroupID)
		}
		if m.GroupingID != 0 {
			groups[m.GroupingID] = append(groups[m.GroupingID], m.GroupID)
		}
	}
	return groups, nil
}

// AllGroups returns the ids of the course groups a user is a member of,
// limited to one grouping when groupingID is not zero.
func (s *GroupService) AllGroups(ctx context.Context, courseID, userID, groupingID uint) ([]uint, error) {
	groups, err := s.GroupRepo.FindUserGroups(ctx, courseID, userID, groupingID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// ActivityGroupMode returns the effective group mode of a course module.
// A course that forces its group mode overrides the module setting.
func (s *GroupService) ActivityGroupMode(cm *model.CMInfo, course *model.Course) int {
	if course != nil && course.GroupModeForce {
		return course.GroupMode
	}
	return cm.GroupMode
}
