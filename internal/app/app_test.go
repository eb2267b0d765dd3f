package app

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/util"
	"adaptivequiz/pkg/database"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	t   *testing.T
	app *App
	db  *gorm.DB
	ctx context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Site: config.SiteConfig{
			WWWRoot:         "http://lms.test",
			Theme:           "boost",
			Timezone:        "UTC",
			FullNameDisplay: "firstname lastname",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://lms.test"}},
	}

	a, err := New(cfg, db, nil)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	return &testEnv{t: t, app: a, db: db, ctx: context.Background()}
}

func (e *testEnv) user(first string, role model.RoleName, course *model.Course) (*model.User, string) {
	e.t.Helper()
	u := &model.User{FirstName: first, LastName: "Tester", Email: strings.ToLower(first) + "@lms.test"}
	require.NoError(e.t, repository.NewUserRepository(e.db).Create(e.ctx, u))
	if course != nil {
		require.NoError(e.t, repository.NewRoleRepository(e.db).Assign(e.ctx, u.ID, course.ID, role))
	}
	token, err := util.GenerateJWT(u.ID, u.Email, testSecret, time.Hour)
	require.NoError(e.t, err)
	return u, token
}

func (e *testEnv) course(format string) *model.Course {
	e.t.Helper()
	c := &model.Course{FullName: "Algebra I", ShortName: "ALG1", Format: format}
	require.NoError(e.t, repository.NewCourseRepository(e.db).Create(e.ctx, c))
	return c
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.app.Router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	decode(t, w, &data)
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, "up", data.Components["database"])
	assert.Equal(t, "disabled", data.Components["cache"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestSupports(t *testing.T) {
	e := newTestEnv(t)
	_, token := e.user("Ada", "", nil)

	tests := []struct {
		feature string
		want    *bool
	}{
		{"groups", boolPtr(true)},
		{"mod_intro", boolPtr(true)},
		{"grade_has_grade", nil},
		{"no_such_feature", nil},
	}
	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			w := e.do(http.MethodGet, "/api/mod/adaptivequiz/supports/"+tt.feature, token, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var data struct {
				Supported *bool `json:"supported"`
			}
			decode(t, w, &data)
			assert.Equal(t, tt.want, data.Supported)
		})
	}
}

func TestModuleRoutesRequireToken(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/mod/adaptivequiz", "", map[string]interface{}{"name": "Quiz"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodGet, "/mod/adaptivequiz/index.php?id=1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInstanceLifecycle(t *testing.T) {
	e := newTestEnv(t)
	c := e.course(model.FormatTopics)
	_, teacher := e.user("Grace", model.RoleTeacher, c)
	_, student := e.user("Alan", model.RoleStudent, c)

	settings := map[string]interface{}{
		"course":       c.ID,
		"name":         "Fractions",
		"attempts":     2,
		"questionpool": []uint{11, 12},
		"section":      3,
	}

	w := e.do(http.MethodPost, "/api/mod/adaptivequiz", student, settings)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, settings)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Instance uint `json:"instance"`
		CMID     uint `json:"cmid"`
	}
	decode(t, w, &created)
	require.NotZero(t, created.Instance)
	require.NotZero(t, created.CMID)

	categories, err := repository.NewAdaptiveQuizRepository(e.db).ListCategories(e.ctx, created.Instance)
	require.NoError(t, err)
	assert.Equal(t, []uint{11, 12}, categories)

	settings["name"] = "Fractions II"
	settings["questionpool"] = []uint{13}
	w = e.do(http.MethodPut, fmt.Sprintf("/api/mod/adaptivequiz/%d", created.Instance), teacher, settings)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	categories, err = repository.NewAdaptiveQuizRepository(e.db).ListCategories(e.ctx, created.Instance)
	require.NoError(t, err)
	assert.Equal(t, []uint{13}, categories)

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/mod/adaptivequiz/%d", created.Instance), student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/mod/adaptivequiz/%d", created.Instance), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/mod/adaptivequiz/%d", created.Instance), teacher, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var modules int64
	require.NoError(t, e.db.Model(&model.CourseModule{}).Where("instance = ?", created.Instance).Count(&modules).Error)
	assert.Zero(t, modules)
}

func TestCreateValidatesBody(t *testing.T) {
	e := newTestEnv(t)
	c := e.course(model.FormatTopics)
	_, teacher := e.user("Grace", model.RoleTeacher, c)

	w := e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, map[string]interface{}{"course": c.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, map[string]interface{}{"course": 9999, "name": "Lost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentActivity(t *testing.T) {
	e := newTestEnv(t)
	c := e.course(model.FormatTopics)
	_, teacher := e.user("Grace", model.RoleTeacher, c)
	alan, _ := e.user("Alan", model.RoleStudent, c)
	_, outsider := e.user("Eve", "", nil)

	w := e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, map[string]interface{}{"course": c.ID, "name": "Fractions"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Instance uint `json:"instance"`
		CMID     uint `json:"cmid"`
	}
	decode(t, w, &created)

	require.NoError(t, repository.NewAttemptRepository(e.db).Create(e.ctx, &model.Attempt{
		Instance:           created.Instance,
		UserID:             alan.ID,
		AttemptState:       "complete",
		QuestionsAttempted: 7,
		TimeCreated:        1000,
		TimeModified:       2000,
	}))

	t.Run("json", func(t *testing.T) {
		path := fmt.Sprintf("/api/course/%d/recent/adaptivequiz?cmid=%d&since=1500", c.ID, created.CMID)
		w := e.do(http.MethodGet, path, teacher, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var items []model.ActivitySummary
		decode(t, w, &items)
		require.Len(t, items, 1)
		assert.Equal(t, alan.ID, items[0].User.ID)
		assert.Equal(t, "Completed", items[0].Content.AttemptState)
		assert.Equal(t, 7, items[0].Content.QuestionsAttempted)
	})

	t.Run("whole course", func(t *testing.T) {
		w := e.do(http.MethodGet, fmt.Sprintf("/api/course/%d/recent/adaptivequiz?since=2000", c.ID), teacher, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var items []model.ActivitySummary
		decode(t, w, &items)
		assert.Empty(t, items)
	})

	t.Run("html", func(t *testing.T) {
		path := fmt.Sprintf("/api/course/%d/recent/adaptivequiz?cmid=%d&detail=1&format=html", c.ID, created.CMID)
		w := e.do(http.MethodGet, path, teacher, nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.True(t, strings.HasPrefix(body, `<table border="0" cellpadding="3" cellspacing="0" class="adaptivequiz-recent">`), body)
		assert.Contains(t, body, `Questions attempted: 7`)
		assert.Contains(t, body, `>Fractions</a>`)
		assert.Contains(t, body, `Alan Tester`)
	})

	t.Run("unknown module", func(t *testing.T) {
		path := fmt.Sprintf("/api/course/%d/recent/adaptivequiz?cmid=%d", c.ID, created.CMID+100)
		w := e.do(http.MethodGet, path, teacher, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not enrolled", func(t *testing.T) {
		w := e.do(http.MethodGet, fmt.Sprintf("/api/course/%d/recent/adaptivequiz", c.ID), outsider, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOutline(t *testing.T) {
	e := newTestEnv(t)
	c := e.course(model.FormatTopics)
	_, teacher := e.user("Grace", model.RoleTeacher, c)
	alan, student := e.user("Alan", model.RoleStudent, c)
	bob, _ := e.user("Bob", model.RoleStudent, c)

	w := e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, map[string]interface{}{"course": c.ID, "name": "Fractions"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Instance uint `json:"instance"`
	}
	decode(t, w, &created)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/mod/adaptivequiz/%d/outline", created.Instance), student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var outline model.UserOutline
	decode(t, w, &outline)
	assert.Equal(t, model.UserOutline{}, outline)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/mod/adaptivequiz/%d/outline?userid=%d", created.Instance, bob.ID), student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/mod/adaptivequiz/%d/outline?userid=%d", created.Instance, alan.ID), teacher, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIndexPage(t *testing.T) {
	e := newTestEnv(t)
	c := e.course(model.FormatTopics)
	_, teacher := e.user("Grace", model.RoleTeacher, c)

	w := e.do(http.MethodGet, fmt.Sprintf("/mod/adaptivequiz/index.php?id=%d", c.ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "No Adaptive Quiz instances found")
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`href="http://lms.test/course/view.php?id=%d"`, c.ID))

	w = e.do(http.MethodPost, "/api/mod/adaptivequiz", teacher, map[string]interface{}{
		"course": c.ID, "name": "Fractions", "section": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(http.MethodGet, fmt.Sprintf("/mod/adaptivequiz/index.php?id=%d", c.ID), teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, ">Topic</th>")
	assert.Contains(t, body, ">Fractions</a>")
	assert.Contains(t, body, "http://lms.test/mod/adaptivequiz/view.php?id=")

	var logged int64
	require.NoError(t, e.db.Model(&model.LogEntry{}).Where("action = ?", "view all").Count(&logged).Error)
	assert.Equal(t, int64(2), logged)
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)

	e.do(http.MethodGet, "/api/health", "", nil)
	w := e.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func boolPtr(b bool) *bool { return &b }
