package controller

import (
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/util"

	"github.com/gin-gonic/gin"
)

// AdaptiveQuizController exposes the instance lifecycle and the module
// hooks to the host.
type AdaptiveQuizController struct {
	CourseModules *service.CourseModuleService
}

func NewAdaptiveQuizController(courseModules *service.CourseModuleService) *AdaptiveQuizController {
	return &AdaptiveQuizController{CourseModules: courseModules}
}

// Supports godoc
// @Summary Feature support
// @Description Reports whether the module supports a host feature. Unknown features report null.
// @Tags adaptivequiz
// @Produce json
// @Security BearerAuth
// @Param feature path string true "Feature name"
// @Success 200 {object} util.Response
// @Router /mod/adaptivequiz/supports/{feature} [get]
func (c *AdaptiveQuizController) Supports(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"feature":   ctx.Param("feature"),
		"supported": c.CourseModules.Supports(ctx.Param("feature")),
	})
}

// Create godoc
// @Summary Add an adaptive quiz
// @Description Creates an instance from the settings form and places it in a course module
// @Tags adaptivequiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.InstanceSettings true "Instance settings"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /mod/adaptivequiz [post]
func (c *AdaptiveQuizController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.InstanceSettings
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Course == 0 {
		util.BadRequest(ctx, "course is required")
		return
	}

	cm, err := c.CourseModules.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"instance": cm.Instance,
		"cmid":     cm.ID,
	})
}

// Update godoc
// @Summary Update an adaptive quiz
// @Tags adaptivequiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param instance path int true "Instance id"
// @Param request body service.InstanceSettings true "Instance settings"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /mod/adaptivequiz/{instance} [put]
func (c *AdaptiveQuizController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	instanceID := util.MustParseUint(ctx.Param("instance"))
	if instanceID == 0 {
		util.BadRequest(ctx, "invalid instance id")
		return
	}

	var req service.InstanceSettings
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.CourseModules.Update(ctx.Request.Context(), user.UserID, instanceID, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"instance":     instanceID,
		"timemodified": q.TimeModified,
	})
}

// Delete godoc
// @Summary Delete an adaptive quiz
// @Description Removes the instance, its category associations, its attempts with their question usages, and its course module
// @Tags adaptivequiz
// @Produce json
// @Security BearerAuth
// @Param instance path int true "Instance id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /mod/adaptivequiz/{instance} [delete]
func (c *AdaptiveQuizController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	instanceID := util.MustParseUint(ctx.Param("instance"))
	if instanceID == 0 {
		util.BadRequest(ctx, "invalid instance id")
		return
	}

	if err := c.CourseModules.Delete(ctx.Request.Context(), user.UserID, instanceID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// Outline godoc
// @Summary User outline
// @Description Short activity summary of a user for the user activity report
// @Tags adaptivequiz
// @Produce json
// @Security BearerAuth
// @Param instance path int true "Instance id"
// @Param userid query int false "User id, defaults to the viewer"
// @Success 200 {object} util.Response{data=model.UserOutline}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /mod/adaptivequiz/{instance}/outline [get]
func (c *AdaptiveQuizController) Outline(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	instanceID := util.MustParseUint(ctx.Param("instance"))
	userID := util.MustParseUint(ctx.Query("userid"))
	if userID == 0 {
		userID = user.UserID
	}

	outline, err := c.CourseModules.Outline(ctx.Request.Context(), user.UserID, instanceID, userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, outline)
}
