package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ModInfoService serves the course module metadata of a course, cached
// in Redis when a client is configured.
type ModInfoService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.AdaptiveQuizRepository
	Redis      *redis.Client
	TTL        time.Duration
}

func NewModInfoService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.AdaptiveQuizRepository,
	rdb *redis.Client,
	ttl time.Duration,
) *ModInfoService {
	return &ModInfoService{
		CourseRepo: courseRepo,
		QuizRepo:   quizRepo,
		Redis:      rdb,
		TTL:        ttl,
	}
}

func modInfoKey(courseID uint) string {
	return fmt.Sprintf("adaptivequiz:modinfo:%d", courseID)
}

func (s *ModInfoService) Get(ctx context.Context, course *model.Course) (*model.ModInfo, error) {
	if s.Redis != nil {
		data, err := s.Redis.Get(ctx, modInfoKey(course.ID)).Bytes()
		if err == nil {
			var info model.ModInfo
			if err := json.Unmarshal(data, &info); err == nil {
				return &info, nil
			}
			logger.Log.Warn("Discarding unreadable cached modinfo", zap.Uint("course", course.ID))
		} else if err != redis.Nil {
			logger.Log.Warn("Reading cached modinfo failed", zap.Uint("course", course.ID), zap.Error(err))
		}
	}

	info, err := s.build(ctx, course)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		data, err := json.Marshal(info)
		if err == nil {
			err = s.Redis.Set(ctx, modInfoKey(course.ID), data, s.TTL).Err()
		}
		if err != nil {
			logger.Log.Warn("Caching modinfo failed", zap.Uint("course", course.ID), zap.Error(err))
		}
	}
	return info, nil
}

func (s *ModInfoService) build(ctx context.Context, course *model.Course) (*model.ModInfo, error) {
	cms, err := s.CourseRepo.ListModules(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("list course modules of course %d: %w", course.ID, err)
	}
	quizzes, err := s.QuizRepo.FindByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("list adaptive quizzes of course %d: %w", course.ID, err)
	}
	names := make(map[uint]string, len(quizzes))
	for _, q := range quizzes {
		names[q.ID] = q.Name
	}

	info := &model.ModInfo{CourseID: course.ID, CMs: make(map[uint]*model.CMInfo, len(cms))}
	for _, cm := range cms {
		ci := &model.CMInfo{
			ID:         cm.ID,
			Course:     cm.Course,
			ModName:    cm.ModName,
			Instance:   cm.Instance,
			Section:    cm.Section,
			SectionNum: cm.SectionNum,
			GroupMode:  cm.GroupMode,
			GroupingID: cm.GroupingID,
			Visible:    cm.Visible,
		}
		if cm.ModName == model.ModuleName {
			ci.Name = names[cm.Instance]
		}
		info.CMs[cm.ID] = ci
	}
	return info, nil
}

// Invalidate drops the cached metadata of a course.
func (s *ModInfoService) Invalidate(ctx context.Context, courseID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, modInfoKey(courseID)).Err(); err != nil {
		logger.Log.Warn("Invalidating cached modinfo failed", zap.Uint("course", courseID), zap.Error(err))
	}
}
