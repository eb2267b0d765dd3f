package controller

import (
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexController serves the browser page listing the adaptive quizzes
// of a course.
type IndexController struct {
	Index *service.IndexService
}

func NewIndexController(index *service.IndexService) *IndexController {
	return &IndexController{Index: index}
}

func (c *IndexController) Index(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := util.MustParseUint(ctx.Query("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "course id is required")
		return
	}

	page, err := c.Index.Build(ctx.Request.Context(), user.UserID, courseID, ctx.ClientIP())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.HTML(http.StatusOK, "index.html", page)
}
