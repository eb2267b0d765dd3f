package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/plugin"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"adaptivequiz/pkg/logger"
	"adaptivequiz/pkg/monitoring"
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsageDeleter removes the question usage recorded for an attempt.
type UsageDeleter interface {
	DeleteUsage(ctx context.Context, tx *gorm.DB, usageID uint) error
}

// CacheInvalidator drops cached course module metadata of a course.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, courseID uint)
}

var _ plugin.ActivityModule = (*AdaptiveQuizService)(nil)

// AdaptiveQuizService implements the callbacks the host invokes on the
// adaptive quiz activity type.
type AdaptiveQuizService struct {
	QuizRepo    *repository.AdaptiveQuizRepository
	AttemptRepo *repository.AttemptRepository
	Engine      UsageDeleter
	ModInfo     CacheInvalidator
	Now         func() time.Time
}

func NewAdaptiveQuizService(
	quizRepo *repository.AdaptiveQuizRepository,
	attemptRepo *repository.AttemptRepository,
	engine UsageDeleter,
	modInfo CacheInvalidator,
) *AdaptiveQuizService {
	return &AdaptiveQuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		Engine:      engine,
		ModInfo:     modInfo,
		Now:         time.Now,
	}
}

var supportedFeatures = map[plugin.Feature]bool{
	plugin.FeatureGroups:                  true,
	plugin.FeatureGroupings:               true,
	plugin.FeatureGroupMembersOnly:        true,
	plugin.FeatureModIntro:                true,
	plugin.FeatureBackupMoodle2:           true,
	plugin.FeatureShowDescription:         true,
	plugin.FeatureControlsGradeVisibility: true,
}

func (s *AdaptiveQuizService) Supports(feature plugin.Feature) *bool {
	if v, ok := supportedFeatures[feature]; ok {
		return &v
	}
	return nil
}

// AddInstance stores a new instance and the question categories it
// draws from, returning the new id.
func (s *AdaptiveQuizService) AddInstance(ctx context.Context, q *model.AdaptiveQuiz) (uint, error) {
	now := s.Now().Unix()
	q.ID = 0
	q.TimeCreated = now
	q.TimeModified = now
	q.AttemptFeedbackFormat = 0

	err := repository.Session(ctx, s.QuizRepo.DB).Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.Create(ctx, tx, q); err != nil {
			return err
		}
		if q.ID != 0 {
			return s.addCategoryAssociations(ctx, tx, q.ID, q)
		}
		return nil
	})
	if err != nil {
		monitoring.InstanceOperations.WithLabelValues("add", "error").Inc()
		return 0, err
	}

	s.invalidate(ctx, q.Course)
	monitoring.InstanceOperations.WithLabelValues("add", "ok").Inc()
	logger.Log.Info("Adaptive quiz instance added",
		zap.Uint("instance", q.ID),
		zap.Uint("course", q.Course),
		zap.Int("categories", len(q.QuestionPool)),
	)
	return q.ID, nil
}

// UpdateInstance overwrites the instance named by q.Instance and
// replaces its question category associations.
func (s *AdaptiveQuizService) UpdateInstance(ctx context.Context, q *model.AdaptiveQuiz) (bool, error) {
	q.TimeModified = s.Now().Unix()
	q.ID = q.Instance
	if q.ID == 0 {
		return false, util.ErrInstanceNotFound
	}

	err := repository.Session(ctx, s.QuizRepo.DB).Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.Update(ctx, tx, q); err != nil {
			return err
		}
		return s.RebuildCategoryAssociations(ctx, tx, q.ID, q)
	})
	if err != nil {
		monitoring.InstanceOperations.WithLabelValues("update", "error").Inc()
		return false, err
	}

	s.invalidate(ctx, q.Course)
	monitoring.InstanceOperations.WithLabelValues("update", "ok").Inc()
	logger.Log.Info("Adaptive quiz instance updated", zap.Uint("instance", q.ID))
	return true, nil
}

// DeleteInstance removes an instance with its category associations,
// its attempts and their question usages. It returns false without
// writing anything when the instance does not exist.
func (s *AdaptiveQuizService) DeleteInstance(ctx context.Context, id uint) (bool, error) {
	q, err := s.QuizRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var removed int
	err = repository.Session(ctx, s.QuizRepo.DB).Transaction(func(tx *gorm.DB) error {
		if err := s.QuizRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		hasCategories, err := s.QuizRepo.HasCategories(ctx, tx, id)
		if err != nil {
			return err
		}
		if hasCategories {
			if err := s.QuizRepo.DeleteCategories(ctx, tx, id); err != nil {
				return err
			}
		}

		attempts, err := s.AttemptRepo.FindByInstance(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			return nil
		}
		// Usage ids are read from the attempt rows, so the usages go first.
		for _, a := range attempts {
			if err := s.Engine.DeleteUsage(ctx, tx, a.UniqueID); err != nil {
				return err
			}
		}
		removed = len(attempts)
		return s.AttemptRepo.DeleteByInstance(ctx, tx, id)
	})
	if err != nil {
		monitoring.InstanceOperations.WithLabelValues("delete", "error").Inc()
		return false, err
	}

	s.invalidate(ctx, q.Course)
	monitoring.InstanceOperations.WithLabelValues("delete", "ok").Inc()
	logger.Log.Info("Adaptive quiz instance deleted",
		zap.Uint("instance", id),
		zap.Int("attempts", removed),
	)
	return true, nil
}

// RebuildCategoryAssociations replaces every category association of an
// instance with one row per entry of q.QuestionPool.
func (s *AdaptiveQuizService) RebuildCategoryAssociations(ctx context.Context, tx *gorm.DB, instance uint, q *model.AdaptiveQuiz) error {
	if instance != 0 {
		if err := s.QuizRepo.DeleteCategories(ctx, tx, instance); err != nil {
			return err
		}
	}
	return s.addCategoryAssociations(ctx, tx, instance, q)
}

func (s *AdaptiveQuizService) addCategoryAssociations(ctx context.Context, tx *gorm.DB, instance uint, q *model.AdaptiveQuiz) error {
	if instance == 0 || len(q.QuestionPool) == 0 {
		return nil
	}
	for _, category := range q.QuestionPool {
		if err := s.QuizRepo.InsertCategory(ctx, tx, instance, category); err != nil {
			return err
		}
	}
	return nil
}

func (s *AdaptiveQuizService) invalidate(ctx context.Context, courseID uint) {
	if s.ModInfo != nil {
		s.ModInfo.Invalidate(ctx, courseID)
	}
}

// UserOutline has nothing to report for this activity yet.
func (s *AdaptiveQuizService) UserOutline(ctx context.Context, course *model.Course, user *model.User, cm *model.CMInfo, q *model.AdaptiveQuiz) *model.UserOutline {
	return &model.UserOutline{Time: 0, Info: ""}
}

func (s *AdaptiveQuizService) UserComplete(ctx context.Context, w io.Writer, course *model.Course, user *model.User, cm *model.CMInfo, q *model.AdaptiveQuiz) error {
	return nil
}

// PrintRecentActivity prints nothing; recent attempts are reported
// through RecentActivityService.
func (s *AdaptiveQuizService) PrintRecentActivity(ctx context.Context, w io.Writer, course *model.Course, viewFullNames bool, timestart int64) bool {
	return false
}

func (s *AdaptiveQuizService) Cron(ctx context.Context) bool {
	monitoring.CronRuns.Inc()
	logger.Log.Debug("Adaptive quiz cron ran")
	return false
}

func (s *AdaptiveQuizService) ExtraCapabilities() []string {
	return []string{}
}

func (s *AdaptiveQuizService) ExtendNavigation(node *plugin.NavigationNode, course *model.Course, cm *model.CMInfo) {
}

func (s *AdaptiveQuizService) ExtendSettingsNavigation(settings *plugin.NavigationNode, node *plugin.NavigationNode) {
}
