package service

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/pkg/database"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixedNow = time.Date(2026, 10, 16, 15, 4, 0, 0, time.UTC)

type fixture struct {
	ctx context.Context
	db  *gorm.DB

	quizRepo    *repository.AdaptiveQuizRepository
	attemptRepo *repository.AttemptRepository
	courseRepo  *repository.CourseRepository
	userRepo    *repository.UserRepository
	groupRepo   *repository.GroupRepository
	roleRepo    *repository.RoleRepository
	usageRepo   *repository.QuestionUsageRepository
	logRepo     *repository.LogRepository

	strings *lang.Strings
	output  *OutputHelper
	caps    *CapabilityService
	groups  *GroupService
	modinfo *ModInfoService
	engine  *QuestionEngine
	quizzes *AdaptiveQuizService
	recent  *RecentActivityService
}

func testSite() config.SiteConfig {
	return config.SiteConfig{
		WWWRoot:                   "http://lms.test",
		Theme:                     "boost",
		Timezone:                  "UTC",
		FullNameDisplay:           "firstname lastname",
		AlternativeFullNameFormat: "lastname, firstname",
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		ctx:         context.Background(),
		db:          db,
		quizRepo:    repository.NewAdaptiveQuizRepository(db),
		attemptRepo: repository.NewAttemptRepository(db),
		courseRepo:  repository.NewCourseRepository(db),
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		roleRepo:    repository.NewRoleRepository(db),
		usageRepo:   repository.NewQuestionUsageRepository(db),
		logRepo:     repository.NewLogRepository(db),
		strings:     lang.English(),
	}
	f.output = NewOutputHelper(testSite(), f.strings)
	f.caps = NewCapabilityService(f.userRepo, f.roleRepo)
	f.groups = NewGroupService(f.groupRepo)
	f.modinfo = NewModInfoService(f.courseRepo, f.quizRepo, nil, time.Minute)
	f.engine = NewQuestionEngine(f.usageRepo)
	f.quizzes = NewAdaptiveQuizService(f.quizRepo, f.attemptRepo, f.engine, f.modinfo)
	f.quizzes.Now = func() time.Time { return fixedNow }
	f.recent = NewRecentActivityService(f.courseRepo, f.quizRepo, f.attemptRepo, f.modinfo, f.caps, f.groups, f.strings)
	return f
}

func (f *fixture) user(t *testing.T, first, last string) *model.User {
	t.Helper()
	u := &model.User{FirstName: first, LastName: last, Email: strings.ToLower(first) + "@lms.test"}
	require.NoError(t, f.userRepo.Create(f.ctx, u))
	return u
}

func (f *fixture) enrol(t *testing.T, u *model.User, c *model.Course, role model.RoleName) {
	t.Helper()
	require.NoError(t, f.roleRepo.Assign(f.ctx, u.ID, c.ID, role))
}

func (f *fixture) course(t *testing.T, format string) *model.Course {
	t.Helper()
	c := &model.Course{FullName: "Algebra I", ShortName: "ALG1", Format: format}
	require.NoError(t, f.courseRepo.Create(f.ctx, c))
	return c
}

// quiz adds an instance and places it in a visible course module.
func (f *fixture) quiz(t *testing.T, c *model.Course, name string, groupMode int) (*model.AdaptiveQuiz, *model.CourseModule) {
	t.Helper()
	q := &model.AdaptiveQuiz{Course: c.ID, Name: name}
	id, err := f.quizzes.AddInstance(f.ctx, q)
	require.NoError(t, err)

	cm := &model.CourseModule{
		Course:     c.ID,
		ModName:    model.ModuleName,
		Instance:   id,
		SectionNum: 1,
		GroupMode:  groupMode,
		Visible:    true,
	}
	require.NoError(t, f.courseRepo.CreateModule(f.ctx, nil, cm))
	return q, cm
}

// attempt records an attempt together with the question usage behind it.
func (f *fixture) attempt(t *testing.T, q *model.AdaptiveQuiz, u *model.User, state string, modified int64) *model.Attempt {
	t.Helper()
	usage := &model.QuestionUsage{Component: "mod_" + model.ModuleName, PreferredBehaviour: "deferredfeedback"}
	require.NoError(t, f.usageRepo.Create(f.ctx, usage))
	require.NoError(t, f.usageRepo.AddAttempt(f.ctx, &model.QuestionAttempt{QuestionUsageID: usage.ID, Slot: 1, QuestionID: 1}))

	a := &model.Attempt{
		Instance:           q.ID,
		UserID:             u.ID,
		UniqueID:           usage.ID,
		AttemptState:       state,
		QuestionsAttempted: 4,
		TimeCreated:        modified,
		TimeModified:       modified,
	}
	require.NoError(t, f.attemptRepo.Create(f.ctx, a))
	return a
}

func (f *fixture) group(t *testing.T, c *model.Course, name string, members ...*model.User) *model.Group {
	t.Helper()
	g := &model.Group{CourseID: c.ID, Name: name}
	require.NoError(t, f.groupRepo.Create(f.ctx, g))
	for _, m := range members {
		require.NoError(t, f.groupRepo.AddMember(f.ctx, g.ID, m.ID))
	}
	return g
}

func (f *fixture) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}
