package app

import (
	"adaptivequiz/docs"
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/middleware"
	"adaptivequiz/pkg/monitoring"
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:embed templates/*.html
var templateFS embed.FS

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. Public routes
	a.registerPublicRoutes(router, c)

	// 2. Routes for an identified viewer
	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	api := router.Group("/api")
	api.Use(auth)
	{
		a.registerModuleRoutes(api, c)
		a.registerCourseRoutes(api, c)
	}

	// 3. Browser pages
	pages := router.Group("/mod/adaptivequiz")
	pages.Use(auth)
	{
		pages.GET("/index.php", c.index.Index)
	}
	return nil
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}
}

func (a *App) registerModuleRoutes(api *gin.RouterGroup, c *controllers) {
	mod := api.Group("/mod/adaptivequiz")
	{
		mod.GET("/supports/:feature", c.adaptiveQuiz.Supports)
		mod.POST("", c.adaptiveQuiz.Create)
		mod.PUT("/:instance", c.adaptiveQuiz.Update)
		mod.DELETE("/:instance", c.adaptiveQuiz.Delete)
		mod.GET("/:instance/outline", c.adaptiveQuiz.Outline)
	}
}

func (a *App) registerCourseRoutes(api *gin.RouterGroup, c *controllers) {
	course := api.Group("/course/:id")
	{
		course.GET("/recent/adaptivequiz", c.recentActivity.Recent)
	}
}
