package controller

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/util"
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecentActivityController struct {
	RecentActivity *service.RecentActivityService
	Renderer       *service.RecentActivityRenderer
	Caps           *service.CapabilityService
	ModNames       map[string]string
}

func NewRecentActivityController(
	recent *service.RecentActivityService,
	renderer *service.RecentActivityRenderer,
	caps *service.CapabilityService,
	modNames map[string]string,
) *RecentActivityController {
	return &RecentActivityController{
		RecentActivity: recent,
		Renderer:       renderer,
		Caps:           caps,
		ModNames:       modNames,
	}
}

// Recent godoc
// @Summary Recent adaptive quiz activity
// @Description Attempts modified after since that the viewer may see, as JSON summaries or rendered HTML
// @Tags adaptivequiz
// @Produce json,html
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param cmid query int false "Course module id, all adaptive quizzes of the course when omitted"
// @Param since query int false "Unix timestamp"
// @Param userid query int false "Only attempts of this user"
// @Param groupid query int false "Only attempts of members of this group"
// @Param detail query bool false "Include the activity title"
// @Param format query string false "json or html"
// @Success 200 {object} util.Response{data=[]model.ActivitySummary}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /course/{id}/recent/adaptivequiz [get]
func (c *RecentActivityController) Recent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Param("id"))
	cmID := util.MustParseUint(ctx.Query("cmid"))
	since := util.ParseUnix(ctx.Query("since"))
	userID := util.MustParseUint(ctx.Query("userid"))
	groupID := util.MustParseUint(ctx.Query("groupid"))

	reqCtx := ctx.Request.Context()
	if err := c.Caps.RequireCourseLogin(reqCtx, user.UserID, courseID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	env := service.Env{UserID: user.UserID}
	var activities []*model.ActivitySummary
	if cmID != 0 {
		index := 0
		err := c.RecentActivity.GetRecentModActivity(reqCtx, env, &activities, &index, since, courseID, cmID, userID, groupID)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
	} else {
		var err error
		activities, err = c.RecentActivity.CourseRecentActivity(reqCtx, env, courseID, since, userID, groupID)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
	}

	if ctx.Query("format") != "html" {
		util.Success(ctx, activities)
		return
	}

	viewFullNames, err := c.Caps.HasCapability(reqCtx, user.UserID, service.CapViewFullNames, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	detail := util.ParseBool(ctx.Query("detail"))

	var buf bytes.Buffer
	for _, a := range activities {
		if a == nil {
			continue
		}
		if err := c.Renderer.Print(&buf, a, courseID, detail, c.ModNames, viewFullNames); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
