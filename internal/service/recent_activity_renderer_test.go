package service

import (
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/model"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleActivity() *model.ActivitySummary {
	return &model.ActivitySummary{
		Type:       model.ModuleName,
		CMID:       7,
		Name:       "Placement test",
		SectionNum: 1,
		Timestamp:  fixedNow.Unix(),
		Content: model.ActivityContent{
			AttemptID:          31,
			AttemptState:       "Completed",
			QuestionsAttempted: 12,
		},
		User: model.ActivityUser{
			ID:        5,
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@lms.test",
		},
	}
}

func newTestRenderer() *RecentActivityRenderer {
	strs := lang.English()
	return NewRecentActivityRenderer(NewOutputHelper(testSite(), strs), strs)
}

var testModNames = map[string]string{model.ModuleName: "Adaptive Quiz"}

func TestRenderMatchesPrint(t *testing.T) {
	r := newTestRenderer()
	a := sampleActivity()

	for _, detail := range []bool{true, false} {
		for _, fullNames := range []bool{true, false} {
			var buf bytes.Buffer
			require.NoError(t, r.Print(&buf, a, 2, detail, testModNames, fullNames))
			assert.Equal(t, r.Render(a, 2, detail, testModNames, fullNames), buf.String())
		}
	}
}

func TestRenderMarkup(t *testing.T) {
	r := newTestRenderer()
	out := r.Render(sampleActivity(), 2, true, testModNames, false)

	expected := `<table border="0" cellpadding="3" cellspacing="0" class="adaptivequiz-recent"><tr>` +
		`<td class="userpicture" valign="top">` +
		`<a href="http://lms.test/user/view.php?id=5&amp;course=2">` +
		`<img src="http://lms.test/theme/image.php/boost/core/1/u/f2" alt="Picture of Jane Doe" title="Picture of Jane Doe" class="userpicture" width="35" height="35" />` +
		`</a></td>` +
		`<td>` +
		`<div class="title">` +
		`<img src="http://lms.test/theme/image.php/boost/adaptivequiz/1/icon" class="icon" alt="Adaptive Quiz" />` +
		`<a href="http://lms.test/mod/adaptivequiz/view.php?id=7" class="icon" alt="Adaptive Quiz">Placement test</a>` +
		`</div>` +
		`<div class="attemptstate">State of attempt:&nbsp;Completed</div>` +
		`<div class="questionsattempted">Questions attempted: 12</div>` +
		`<div class="user"><a href="http://lms.test/user/view.php?id=5&amp;course=2">Jane Doe</a>&nbsp;Friday, 16 October 2026, 3:04 PM</div>` +
		`</td>` +
		`</tr></table>`
	assert.Equal(t, expected, out)
}

func TestRenderWithoutDetailOmitsTitle(t *testing.T) {
	r := newTestRenderer()
	out := r.Render(sampleActivity(), 2, false, nil, false)

	assert.NotContains(t, out, `class="title"`)
	assert.NotContains(t, out, "/mod/adaptivequiz/view.php")
	assert.Contains(t, out, `<div class="attemptstate">`)
}

func TestRenderFullNameFormat(t *testing.T) {
	r := newTestRenderer()

	assert.Contains(t, r.Render(sampleActivity(), 2, false, nil, true), ">Doe, Jane</a>")
	assert.Contains(t, r.Render(sampleActivity(), 2, false, nil, false), ">Jane Doe</a>")
}

func TestRenderEscapesText(t *testing.T) {
	r := newTestRenderer()
	a := sampleActivity()
	a.Name = `<script>alert("x")</script>`
	a.User.FirstName = "Tom & Jerry"

	out := r.Render(a, 2, true, testModNames, false)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Tom &amp; Jerry Doe</a>")
	assert.Equal(t, 1, strings.Count(out, "<table"))
}
