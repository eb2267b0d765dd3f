package service

import (
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"adaptivequiz/pkg/logger"
	"adaptivequiz/pkg/monitoring"
	"adaptivequiz/pkg/tracing"
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Env is the request the host is serving: the course already loaded for
// the page, if any, and the viewing user.
type Env struct {
	Course *model.Course
	UserID uint
}

type CapabilityChecker interface {
	HasCapability(ctx context.Context, userID uint, capability string, courseID uint) (bool, error)
}

type GroupResolver interface {
	UserGroups(ctx context.Context, courseID, userID uint) (map[uint][]uint, error)
	AllGroups(ctx context.Context, courseID, userID, groupingID uint) ([]uint, error)
	ActivityGroupMode(cm *model.CMInfo, course *model.Course) int
}

type ModInfoProvider interface {
	Get(ctx context.Context, course *model.Course) (*model.ModInfo, error)
}

type RecentActivityService struct {
	CourseRepo  *repository.CourseRepository
	QuizRepo    *repository.AdaptiveQuizRepository
	AttemptRepo *repository.AttemptRepository
	ModInfo     ModInfoProvider
	Caps        CapabilityChecker
	Groups      GroupResolver
	Strings     *lang.Strings
}

func NewRecentActivityService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.AdaptiveQuizRepository,
	attemptRepo *repository.AttemptRepository,
	modInfo ModInfoProvider,
	caps CapabilityChecker,
	groups GroupResolver,
	strs *lang.Strings,
) *RecentActivityService {
	return &RecentActivityService{
		CourseRepo:  courseRepo,
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		ModInfo:     modInfo,
		Caps:        caps,
		Groups:      groups,
		Strings:     strs,
	}
}

// GetRecentModActivity appends a summary for every attempt on the
// course module modified after timestart that the viewer may see.
// Entries are written at *index, which advances once per entry.
// A non-zero userID or groupID restricts the attempts to that user or
// to members of that group.
func (s *RecentActivityService) GetRecentModActivity(
	ctx context.Context,
	env Env,
	activities *[]*model.ActivitySummary,
	index *int,
	timestart int64,
	courseID, cmID, userID, groupID uint,
) error {
	ctx, span := tracing.Tracer.Start(ctx, "recentactivity.get")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("course.id", int64(courseID)),
		attribute.Int64("cm.id", int64(cmID)),
	)

	course, err := s.course(ctx, env, courseID)
	if err != nil {
		return err
	}

	modinfo, err := s.ModInfo.Get(ctx, course)
	if err != nil {
		return err
	}
	cm, ok := modinfo.CMs[cmID]
	if !ok || cm.ModName != model.ModuleName {
		return fmt.Errorf("%w: %d", util.ErrCourseModuleNotFound, cmID)
	}
	quiz, err := s.QuizRepo.FindByID(ctx, cm.Instance)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", util.ErrInstanceNotFound, cm.Instance)
	}
	if err != nil {
		return err
	}
	if quiz.Course != course.ID {
		return fmt.Errorf("%w: %d", util.ErrInstanceNotFound, cm.Instance)
	}

	rows, err := s.AttemptRepo.RecentRows(ctx, repository.RecentAttemptFilter{
		Instance:  quiz.ID,
		TimeStart: timestart,
		UserID:    userID,
		GroupID:   groupID,
	})
	if err != nil {
		return fmt.Errorf("query recent attempts: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return rows.Err()
	}

	accessAllGroups, err := s.Caps.HasCapability(ctx, env.UserID, CapAccessAllGroups, course.ID)
	if err != nil {
		return err
	}
	viewReport, err := s.Caps.HasCapability(ctx, env.UserID, CapAdaptiveQuizViewReport, course.ID)
	if err != nil {
		return err
	}
	groupMode := s.Groups.ActivityGroupMode(cm, course)
	groups := newGroupCache(s.Groups, course.ID, cm.GroupingID, env.UserID)

	added := 0
	for more := true; more; more = rows.Next() {
		var row repository.RecentAttemptRow
		if err := s.AttemptRepo.ScanRow(rows, &row); err != nil {
			return fmt.Errorf("scan recent attempt: %w", err)
		}

		if row.UserID != env.UserID {
			if !viewReport {
				monitoring.RecentActivitySkipped.WithLabelValues("viewreport").Inc()
				continue
			}
			if groupMode == model.SeparateGroups && !accessAllGroups {
				shared, err := groups.sharesGroup(ctx, row.UserID)
				if err != nil {
					return err
				}
				if !shared {
					monitoring.RecentActivitySkipped.WithLabelValues("separategroups").Inc()
					continue
				}
			}
		}

		putActivity(activities, index, s.summary(cm, &row))
		added++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate recent attempts: %w", err)
	}

	span.SetAttributes(attribute.Int("items", added))
	monitoring.RecentActivityItems.Add(float64(added))
	logger.Log.Debug("Recent adaptive quiz activity collected",
		zap.Uint("cm", cm.ID),
		zap.Uint("viewer", env.UserID),
		zap.Int("items", added),
	)
	return nil
}

// CourseRecentActivity collects recent activity across every adaptive
// quiz of a course, in course order.
func (s *RecentActivityService) CourseRecentActivity(ctx context.Context, env Env, courseID uint, timestart int64, userID, groupID uint) ([]*model.ActivitySummary, error) {
	course, err := s.course(ctx, env, courseID)
	if err != nil {
		return nil, err
	}
	env.Course = course

	modinfo, err := s.ModInfo.Get(ctx, course)
	if err != nil {
		return nil, err
	}

	var activities []*model.ActivitySummary
	index := 0
	for _, cm := range modinfo.Instances(model.ModuleName) {
		if err := s.GetRecentModActivity(ctx, env, &activities, &index, timestart, course.ID, cm.ID, userID, groupID); err != nil {
			return nil, err
		}
	}
	return activities, nil
}

func (s *RecentActivityService) course(ctx context.Context, env Env, courseID uint) (*model.Course, error) {
	if env.Course != nil && env.Course.ID == courseID {
		return env.Course, nil
	}
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	return course, err
}

func (s *RecentActivityService) summary(cm *model.CMInfo, row *repository.RecentAttemptRow) *model.ActivitySummary {
	return &model.ActivitySummary{
		Type:       model.ModuleName,
		CMID:       cm.ID,
		Name:       cm.Name,
		SectionNum: cm.SectionNum,
		Timestamp:  row.TimeModified,
		Content: model.ActivityContent{
			AttemptID:          row.ID,
			AttemptState:       s.Strings.Get("recent" + row.AttemptState),
			QuestionsAttempted: row.QuestionsAttempted,
		},
		User: model.ActivityUser{
			ID:        row.UserID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Picture:   row.Picture,
			ImageAlt:  row.ImageAlt,
			Email:     row.Email,
		},
	}
}

// putActivity stores a at *index, growing the list as needed, and
// advances the index.
func putActivity(activities *[]*model.ActivitySummary, index *int, a *model.ActivitySummary) {
	for len(*activities) <= *index {
		*activities = append(*activities, nil)
	}
	(*activities)[*index] = a
	*index++
}

// groupCache memoizes group lookups for one aggregation call.
type groupCache struct {
	groups     GroupResolver
	courseID   uint
	groupingID uint
	viewerID   uint

	viewer map[uint]bool
	owners map[uint][]uint
}

func newGroupCache(groups GroupResolver, courseID, groupingID, viewerID uint) *groupCache {
	return &groupCache{
		groups:     groups,
		courseID:   courseID,
		groupingID: groupingID,
		viewerID:   viewerID,
		owners:     make(map[uint][]uint),
	}
}

// viewerGroups returns the viewer's groups within the module's grouping.
func (c *groupCache) viewerGroups(ctx context.Context) (map[uint]bool, error) {
	if c.viewer != nil {
		return c.viewer, nil
	}
	byGrouping, err := c.groups.UserGroups(ctx, c.courseID, c.viewerID)
	if err != nil {
		return nil, err
	}
	c.viewer = make(map[uint]bool)
	for _, id := range byGrouping[c.groupingID] {
		c.viewer[id] = true
	}
	return c.viewer, nil
}

func (c *groupCache) ownerGroups(ctx context.Context, ownerID uint) ([]uint, error) {
	if ids, ok := c.owners[ownerID]; ok {
		return ids, nil
	}
	ids, err := c.groups.AllGroups(ctx, c.courseID, ownerID, c.groupingID)
	if err != nil {
		return nil, err
	}
	c.owners[ownerID] = ids
	return ids, nil
}

// sharesGroup reports whether the owner and the viewer have a group in common.
func (c *groupCache) sharesGroup(ctx context.Context, ownerID uint) (bool, error) {
	viewer, err := c.viewerGroups(ctx)
	if err != nil {
		return false, err
	}
	owner, err := c.ownerGroups(ctx, ownerID)
	if err != nil {
		return false, err
	}
	for _, id := range owner {
		if viewer[id] {
			return true, nil
		}
	}
	return false, nil
}
