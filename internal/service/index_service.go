package service

import (
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// IndexCell is one table cell of the index page. A cell with a URL
// renders as a link.
type IndexCell struct {
	Text   string
	URL    string
	Dimmed bool
}

// IndexPage lists the adaptive quizzes of a course.
type IndexPage struct {
	Title   string
	Heading string
	Head    []string
	Align   []string
	Rows    [][]IndexCell

	// Notice replaces the table when the course has no instances.
	Notice       string
	NoticeURL    string
	ContinueText string
}

type IndexService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.AdaptiveQuizRepository
	LogRepo    *repository.LogRepository
	Caps       *CapabilityService
	Output     *OutputHelper
	Strings    *lang.Strings
}

func NewIndexService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.AdaptiveQuizRepository,
	logRepo *repository.LogRepository,
	caps *CapabilityService,
	output *OutputHelper,
	strs *lang.Strings,
) *IndexService {
	return &IndexService{
		CourseRepo: courseRepo,
		QuizRepo:   quizRepo,
		LogRepo:    logRepo,
		Caps:       caps,
		Output:     output,
		Strings:    strs,
	}
}

// Build prepares the index page of a course for a viewer and records the
// visit in the course log.
func (s *IndexService) Build(ctx context.Context, viewerID, courseID uint, ip string) (*IndexPage, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", util.ErrCourseNotFound, courseID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Caps.RequireCourseLogin(ctx, viewerID, course.ID); err != nil {
		return nil, err
	}

	err = s.LogRepo.Add(ctx, &model.LogEntry{
		UserID: viewerID,
		IP:     ip,
		Course: course.ID,
		Module: model.ModuleName,
		Action: "view all",
		URL:    fmt.Sprintf("index.php?id=%d", course.ID),
	})
	if err != nil {
		return nil, fmt.Errorf("log index view: %w", err)
	}

	viewHidden, err := s.Caps.HasCapability(ctx, viewerID, CapViewHiddenActivities, course.ID)
	if err != nil {
		return nil, err
	}
	instances, err := s.QuizRepo.ListInCourse(ctx, course.ID, viewHidden)
	if err != nil {
		return nil, err
	}

	page := &IndexPage{
		Title:   course.FullName,
		Heading: s.Strings.Get("modulenameplural"),
	}
	if len(instances) == 0 {
		page.Notice = s.Strings.Get("nonewmodules")
		page.NoticeURL = s.Output.CourseURL(course.ID)
		page.ContinueText = s.Strings.Get("continue")
		return page, nil
	}

	switch course.Format {
	case model.FormatWeeks:
		page.Head = []string{s.Strings.Get("week"), s.Strings.Get("name")}
		page.Align = []string{"center", "left"}
	case model.FormatTopics:
		page.Head = []string{s.Strings.Get("topic"), s.Strings.Get("name")}
		page.Align = []string{"center", "left", "left", "left"}
	default:
		page.Head = []string{s.Strings.Get("name")}
		page.Align = []string{"left", "left", "left"}
	}

	sectioned := course.Format == model.FormatWeeks || course.Format == model.FormatTopics
	for _, inst := range instances {
		link := IndexCell{
			Text:   inst.Name,
			URL:    s.Output.ModuleURL(inst.CourseModule),
			Dimmed: !inst.Visible,
		}
		if sectioned {
			page.Rows = append(page.Rows, []IndexCell{{Text: strconv.Itoa(inst.Section)}, link})
		} else {
			page.Rows = append(page.Rows, []IndexCell{link})
		}
	}
	return page, nil
}

// AlignAt returns the alignment of column i.
func (p *IndexPage) AlignAt(i int) string {
	if i < len(p.Align) {
		return p.Align[i]
	}
	return "left"
}
