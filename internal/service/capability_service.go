package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	CapAccessAllGroups        = "moodle/site:accessallgroups"
	CapViewFullNames          = "moodle/site:viewfullnames"
	CapManageActivities       = "moodle/course:manageactivities"
	CapViewHiddenActivities   = "moodle/course:viewhiddenactivities"
	CapAdaptiveQuizAdd        = "mod/adaptivequiz:addinstance"
	CapAdaptiveQuizView       = "mod/adaptivequiz:view"
	CapAdaptiveQuizAttempt    = "mod/adaptivequiz:attempt"
	CapAdaptiveQuizViewReport = "mod/adaptivequiz:viewreport"
)

// rolePermissions lists the capabilities granted by each course role.
// A trailing * matches any suffix.
var rolePermissions = map[model.RoleName][]string{
	model.RoleStudent: {
		CapAdaptiveQuizView,
		CapAdaptiveQuizAttempt,
	},
	model.RoleNonEditingTeacher: {
		CapAdaptiveQuizView,
		CapAdaptiveQuizViewReport,
		CapViewFullNames,
	},
	model.RoleTeacher: {
		"mod/adaptivequiz:*",
		CapAccessAllGroups,
		CapViewFullNames,
		CapManageActivities,
		CapViewHiddenActivities,
	},
	model.RoleManager: {"*"},
}

type CapabilityService struct {
	UserRepo *repository.UserRepository
	RoleRepo *repository.RoleRepository
}

func NewCapabilityService(userRepo *repository.UserRepository, roleRepo *repository.RoleRepository) *CapabilityService {
	return &CapabilityService{UserRepo: userRepo, RoleRepo: roleRepo}
}

// HasCapability reports whether a user holds a capability in a course.
// Site administrators hold every capability; unknown users hold none.
func (s *CapabilityService) HasCapability(ctx context.Context, userID uint, capability string, courseID uint) (bool, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if user.SiteAdmin {
		return true, nil
	}

	roles, err := s.RoleRepo.FindRoles(ctx, userID, courseID)
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		for _, pattern := range rolePermissions[role] {
			if matchCapability(pattern, capability) {
				return true, nil
			}
		}
	}
	return false, nil
}

// RequireCourseLogin fails with util.ErrNotEnrolled unless the user
// holds a role in the course or is a site administrator.
func (s *CapabilityService) RequireCourseLogin(ctx context.Context, userID, courseID uint) error {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if user.SiteAdmin {
		return nil
	}

	roles, err := s.RoleRepo.FindRoles(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return util.ErrNotEnrolled
	}
	return nil
}

// Require fails with util.ErrPermissionDenied when the capability is missing.
func (s *CapabilityService) Require(ctx context.Context, userID uint, capability string, courseID uint) error {
	ok, err := s.HasCapability(ctx, userID, capability, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrPermissionDenied
	}
	return nil
}

func matchCapability(pattern, capability string) bool {
	if pattern == "*" || pattern == capability {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(capability, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
