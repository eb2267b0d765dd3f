package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/util"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newCourseModuleService(f *fixture) *CourseModuleService {
	return NewCourseModuleService(f.courseRepo, f.quizRepo, f.userRepo, f.quizzes, f.caps, f.modinfo)
}

func TestCourseModuleLifecycle(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, model.FormatTopics)
	teacher := f.user(t, "Grace", "Hopper")
	f.enrol(t, teacher, c, model.RoleTeacher)
	s := newCourseModuleService(f)

	hidden := false
	cm, err := s.Create(f.ctx, teacher.ID, InstanceSettings{
		Course:       c.ID,
		Name:         "Placement",
		QuestionPool: []uint{1, 2},
		SectionNum:   3,
		GroupMode:    model.SeparateGroups,
		Visible:      &hidden,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ModuleName, cm.ModName)
	assert.Equal(t, 3, cm.SectionNum)
	assert.False(t, cm.Visible)

	q, err := s.Update(f.ctx, teacher.ID, cm.Instance, InstanceSettings{Name: "Placement v2", QuestionPool: []uint{5}, SectionNum: 4})
	require.NoError(t, err)
	assert.Equal(t, c.ID, q.Course)

	stored, err := f.quizRepo.FindByID(f.ctx, cm.Instance)
	require.NoError(t, err)
	assert.Equal(t, "Placement v2", stored.Name)
	assert.Equal(t, c.ID, stored.Course)
	categories, err := f.quizRepo.ListCategories(f.ctx, cm.Instance)
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, categories)

	moved, err := f.courseRepo.FindModuleByInstance(f.ctx, model.ModuleName, cm.Instance)
	require.NoError(t, err)
	assert.Equal(t, 4, moved.SectionNum)
	assert.False(t, moved.Visible)

	require.NoError(t, s.Delete(f.ctx, teacher.ID, cm.Instance))
	assert.Zero(t, f.count(t, &model.CourseModule{}, "id = ?", cm.ID))
	assert.ErrorIs(t, s.Delete(f.ctx, teacher.ID, cm.Instance), util.ErrInstanceNotFound)
}

var errModuleTable = errors.New("course_modules unavailable")

// failCourseModules makes every statement of the given kind against the
// course_modules table fail.
func failCourseModules(t *testing.T, db *gorm.DB, kind string) {
	t.Helper()
	fail := func(d *gorm.DB) {
		if d.Statement.Table == "course_modules" {
			d.AddError(errModuleTable)
		}
	}
	switch kind {
	case "create":
		require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_course_modules", fail))
	case "delete":
		require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_course_modules", fail))
	}
}

func TestCourseModuleCreateRollsBackInstance(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, model.FormatTopics)
	teacher := f.user(t, "Grace", "Hopper")
	f.enrol(t, teacher, c, model.RoleTeacher)
	s := newCourseModuleService(f)
	failCourseModules(t, f.db, "create")

	cm, err := s.Create(f.ctx, teacher.ID, InstanceSettings{Course: c.ID, Name: "Placement", QuestionPool: []uint{1, 2}})

	assert.ErrorIs(t, err, errModuleTable)
	assert.Nil(t, cm)
	assert.Zero(t, f.count(t, &model.AdaptiveQuiz{}, "course = ?", c.ID))
	assert.Zero(t, f.count(t, &model.QuestionCategoryAssociation{}, "1 = 1"))
}

func TestCourseModuleDeleteRollsBackInstance(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, model.FormatTopics)
	teacher := f.user(t, "Grace", "Hopper")
	student := f.user(t, "Alan", "Turing")
	f.enrol(t, teacher, c, model.RoleTeacher)
	s := newCourseModuleService(f)

	cm, err := s.Create(f.ctx, teacher.ID, InstanceSettings{Course: c.ID, Name: "Placement", QuestionPool: []uint{1}})
	require.NoError(t, err)
	q, err := f.quizRepo.FindByID(f.ctx, cm.Instance)
	require.NoError(t, err)
	a := f.attempt(t, q, student, model.AttemptComplete, 100)
	failCourseModules(t, f.db, "delete")

	assert.ErrorIs(t, s.Delete(f.ctx, teacher.ID, cm.Instance), errModuleTable)
	assert.EqualValues(t, 1, f.count(t, &model.AdaptiveQuiz{}, "id = ?", cm.Instance))
	assert.EqualValues(t, 1, f.count(t, &model.QuestionCategoryAssociation{}, "instance = ?", cm.Instance))
	assert.EqualValues(t, 1, f.count(t, &model.Attempt{}, "id = ?", a.ID))
	assert.EqualValues(t, 1, f.count(t, &model.QuestionUsage{}, "id = ?", a.UniqueID))
	assert.EqualValues(t, 1, f.count(t, &model.CourseModule{}, "id = ?", cm.ID))
}

func TestCourseModuleCapabilities(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, model.FormatTopics)
	student := f.user(t, "Ada", "Lovelace")
	f.enrol(t, student, c, model.RoleStudent)
	s := newCourseModuleService(f)

	_, err := s.Create(f.ctx, student.ID, InstanceSettings{Course: c.ID, Name: "Nope"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = s.Create(f.ctx, student.ID, InstanceSettings{Course: c.ID + 9, Name: "Nowhere"})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	q, _ := f.quiz(t, c, "Existing", model.NoGroups)
	_, err = s.Update(f.ctx, student.ID, q.ID, InstanceSettings{Name: "Changed"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.ErrorIs(t, s.Delete(f.ctx, student.ID, q.ID), util.ErrPermissionDenied)
	assert.EqualValues(t, 1, f.count(t, &model.AdaptiveQuiz{}, "id = ?", q.ID))
}

func TestCourseModuleOutline(t *testing.T) {
	f := newFixture(t)
	c := f.course(t, model.FormatTopics)
	student := f.user(t, "Ada", "Lovelace")
	other := f.user(t, "Alan", "Turing")
	f.enrol(t, student, c, model.RoleStudent)
	f.enrol(t, other, c, model.RoleStudent)
	q, _ := f.quiz(t, c, "Outlined", model.NoGroups)
	s := newCourseModuleService(f)

	outline, err := s.Outline(f.ctx, student.ID, q.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, &model.UserOutline{}, outline)

	_, err = s.Outline(f.ctx, student.ID, q.ID, other.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = s.Outline(f.ctx, student.ID, q.ID+10, student.ID)
	assert.ErrorIs(t, err, util.ErrInstanceNotFound)
}

func TestCourseModuleSupports(t *testing.T) {
	f := newFixture(t)
	s := newCourseModuleService(f)

	got := s.Supports("groups")
	require.NotNil(t, got)
	assert.True(t, *got)
	assert.Nil(t, s.Supports("grade_has_grade"))
}
