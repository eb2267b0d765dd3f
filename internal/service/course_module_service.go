package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/plugin"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// InstanceSettings is the settings form of an adaptive quiz together
// with the placement of its course module.
type InstanceSettings struct {
	Course           uint    `json:"course"`
	Name             string  `json:"name" binding:"required,max=255"`
	Intro            string  `json:"intro"`
	IntroFormat      int     `json:"introformat"`
	AttemptsAllowed  int     `json:"attempts" binding:"min=0,max=10"`
	Password         string  `json:"password"`
	BrowserSecurity  int     `json:"browsersecurity"`
	AttemptFeedback  string  `json:"attemptfeedback"`
	HighestLevel     int     `json:"highestlevel"`
	LowestLevel      int     `json:"lowestlevel"`
	MinimumQuestions int     `json:"minimumquestions"`
	MaximumQuestions int     `json:"maximumquestions"`
	StandardError    float64 `json:"standarderror"`
	StartingLevel    int     `json:"startinglevel"`
	QuestionPool     []uint  `json:"questionpool"`

	SectionNum int   `json:"section"`
	GroupMode  int   `json:"groupmode" binding:"min=0,max=2"`
	GroupingID uint  `json:"groupingid"`
	Visible    *bool `json:"visible"`
}

func (r InstanceSettings) toModel() *model.AdaptiveQuiz {
	return &model.AdaptiveQuiz{
		Course:           r.Course,
		Name:             r.Name,
		Intro:            r.Intro,
		IntroFormat:      r.IntroFormat,
		AttemptsAllowed:  r.AttemptsAllowed,
		Password:         r.Password,
		BrowserSecurity:  r.BrowserSecurity,
		AttemptFeedback:  r.AttemptFeedback,
		HighestLevel:     r.HighestLevel,
		LowestLevel:      r.LowestLevel,
		MinimumQuestions: r.MinimumQuestions,
		MaximumQuestions: r.MaximumQuestions,
		StandardError:    r.StandardError,
		StartingLevel:    r.StartingLevel,
		QuestionPool:     r.QuestionPool,
	}
}

// CourseModuleService does the host's share of managing an activity:
// checking capabilities and keeping course modules in step with the
// instances the module stores.
type CourseModuleService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.AdaptiveQuizRepository
	UserRepo   *repository.UserRepository
	Module     plugin.ActivityModule
	Caps       *CapabilityService
	ModInfo    *ModInfoService
}

func NewCourseModuleService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.AdaptiveQuizRepository,
	userRepo *repository.UserRepository,
	module plugin.ActivityModule,
	caps *CapabilityService,
	modInfo *ModInfoService,
) *CourseModuleService {
	return &CourseModuleService{
		CourseRepo: courseRepo,
		QuizRepo:   quizRepo,
		UserRepo:   userRepo,
		Module:     module,
		Caps:       caps,
		ModInfo:    modInfo,
	}
}

// Create adds an instance to a course and places it in a course module.
func (s *CourseModuleService) Create(ctx context.Context, userID uint, req InstanceSettings) (*model.CourseModule, error) {
	course, err := s.CourseRepo.FindByID(ctx, req.Course)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, req.Course)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Caps.Require(ctx, userID, CapAdaptiveQuizAdd, course.ID); err != nil {
		return nil, err
	}

	var cm *model.CourseModule
	err = repository.Session(ctx, s.CourseRepo.DB).Transaction(func(tx *gorm.DB) error {
		txCtx := repository.WithTx(ctx, tx)
		id, err := s.Module.AddInstance(txCtx, req.toModel())
		if err != nil {
			return err
		}
		cm = &model.CourseModule{
			Course:     course.ID,
			ModName:    model.ModuleName,
			Instance:   id,
			SectionNum: req.SectionNum,
			GroupMode:  req.GroupMode,
			GroupingID: req.GroupingID,
			Visible:    req.Visible == nil || *req.Visible,
			Added:      model.UnixNow(),
		}
		return s.CourseRepo.CreateModule(txCtx, tx, cm)
	})
	if err != nil {
		return nil, err
	}
	s.ModInfo.Invalidate(ctx, course.ID)
	return cm, nil
}

// Update saves new settings for an existing instance.
func (s *CourseModuleService) Update(ctx context.Context, userID, instanceID uint, req InstanceSettings) (*model.AdaptiveQuiz, error) {
	existing, err := s.instance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if err := s.Caps.Require(ctx, userID, CapManageActivities, existing.Course); err != nil {
		return nil, err
	}

	q := req.toModel()
	q.Instance = instanceID
	q.Course = existing.Course
	q.TimeCreated = existing.TimeCreated
	err = repository.Session(ctx, s.CourseRepo.DB).Transaction(func(tx *gorm.DB) error {
		txCtx := repository.WithTx(ctx, tx)
		if _, err := s.Module.UpdateInstance(txCtx, q); err != nil {
			return err
		}

		cm, err := s.CourseRepo.FindModuleByInstance(txCtx, model.ModuleName, instanceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		cm.SectionNum = req.SectionNum
		cm.GroupMode = req.GroupMode
		cm.GroupingID = req.GroupingID
		if req.Visible != nil {
			cm.Visible = *req.Visible
		}
		return s.CourseRepo.UpdateModuleSettings(txCtx, cm)
	})
	if err != nil {
		return nil, err
	}
	s.ModInfo.Invalidate(ctx, existing.Course)
	return q, nil
}

// Delete removes an instance and its course module.
func (s *CourseModuleService) Delete(ctx context.Context, userID, instanceID uint) error {
	existing, err := s.instance(ctx, instanceID)
	if err != nil {
		return err
	}
	if err := s.Caps.Require(ctx, userID, CapManageActivities, existing.Course); err != nil {
		return err
	}

	err = repository.Session(ctx, s.CourseRepo.DB).Transaction(func(tx *gorm.DB) error {
		txCtx := repository.WithTx(ctx, tx)
		ok, err := s.Module.DeleteInstance(txCtx, instanceID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", util.ErrInstanceNotFound, instanceID)
		}

		cm, err := s.CourseRepo.FindModuleByInstance(txCtx, model.ModuleName, instanceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return s.CourseRepo.DeleteModule(txCtx, tx, cm.ID)
	})
	if err != nil {
		return err
	}
	s.ModInfo.Invalidate(ctx, existing.Course)
	return nil
}

// Outline returns the user activity report entry of a user for an instance.
func (s *CourseModuleService) Outline(ctx context.Context, viewerID, instanceID, userID uint) (*model.UserOutline, error) {
	q, err := s.instance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(ctx, q.Course)
	if err != nil {
		return nil, err
	}
	if userID != viewerID {
		if err := s.Caps.Require(ctx, viewerID, CapAdaptiveQuizViewReport, course.ID); err != nil {
			return nil, err
		}
	}
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	modinfo, err := s.ModInfo.Get(ctx, course)
	if err != nil {
		return nil, err
	}
	var cm *model.CMInfo
	for _, c := range modinfo.Instances(model.ModuleName) {
		if c.Instance == q.ID {
			cm = c
			break
		}
	}
	if cm == nil {
		return nil, fmt.Errorf("%w: instance %d", util.ErrCourseModuleNotFound, q.ID)
	}
	return s.Module.UserOutline(ctx, course, user, cm, q), nil
}

// Supports reports the module's answer for a feature.
func (s *CourseModuleService) Supports(feature string) *bool {
	return s.Module.Supports(plugin.Feature(feature))
}

func (s *CourseModuleService) instance(ctx context.Context, id uint) (*model.AdaptiveQuiz, error) {
	q, err := s.QuizRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrInstanceNotFound, id)
	}
	return q, err
}
