package app

import (
	"adaptivequiz/docs"
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/controller"
	"adaptivequiz/internal/lang"
	"adaptivequiz/internal/middleware"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/service"
	"adaptivequiz/pkg/configwatcher"
	"adaptivequiz/pkg/database"
	"adaptivequiz/pkg/logger"
	"adaptivequiz/pkg/monitoring"
	"adaptivequiz/pkg/scheduler"
	"adaptivequiz/pkg/security"
	"adaptivequiz/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const cronTimeout = 4 * time.Minute

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	scheduler       *scheduler.Scheduler
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)

	ctx    context.Context
	cancel context.CancelFunc
}

type repositories struct {
	user     *repository.UserRepository
	role     *repository.RoleRepository
	course   *repository.CourseRepository
	group    *repository.GroupRepository
	quiz     *repository.AdaptiveQuizRepository
	attempt  *repository.AttemptRepository
	usage    *repository.QuestionUsageRepository
	eventLog *repository.LogRepository
}

type services struct {
	strings        *lang.Strings
	output         *service.OutputHelper
	capability     *service.CapabilityService
	group          *service.GroupService
	modInfo        *service.ModInfoService
	questionEngine *service.QuestionEngine
	adaptiveQuiz   *service.AdaptiveQuizService
	courseModule   *service.CourseModuleService
	recentActivity *service.RecentActivityService
	renderer       *service.RecentActivityRenderer
	index          *service.IndexService
}

type controllers struct {
	adaptiveQuiz   *controller.AdaptiveQuizController
	recentActivity *controller.RecentActivityController
	index          *controller.IndexController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		role:     repository.NewRoleRepository(db),
		course:   repository.NewCourseRepository(db),
		group:    repository.NewGroupRepository(db),
		quiz:     repository.NewAdaptiveQuizRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		usage:    repository.NewQuestionUsageRepository(db),
		eventLog: repository.NewLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.strings = lang.English()
	s.output = service.NewOutputHelper(cfg.Site, s.strings)
	s.capability = service.NewCapabilityService(repos.user, repos.role)
	s.group = service.NewGroupService(repos.group)
	s.modInfo = service.NewModInfoService(repos.course, repos.quiz, rdb, cfg.Redis.ModInfoTTL())
	s.questionEngine = service.NewQuestionEngine(repos.usage)

	s.adaptiveQuiz = service.NewAdaptiveQuizService(repos.quiz, repos.attempt, s.questionEngine, s.modInfo)
	s.courseModule = service.NewCourseModuleService(
		repos.course,
		repos.quiz,
		repos.user,
		s.adaptiveQuiz,
		s.capability,
		s.modInfo,
	)

	s.recentActivity = service.NewRecentActivityService(
		repos.course,
		repos.quiz,
		repos.attempt,
		s.modInfo,
		s.capability,
		s.group,
		s.strings,
	)
	s.renderer = service.NewRecentActivityRenderer(s.output, s.strings)
	s.index = service.NewIndexService(repos.course, repos.quiz, repos.eventLog, s.capability, s.output, s.strings)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	modNames := map[string]string{model.ModuleName: s.strings.Get("modulename")}
	return &controllers{
		adaptiveQuiz:   controller.NewAdaptiveQuizController(s.courseModule),
		recentActivity: controller.NewRecentActivityController(s.recentActivity, s.renderer, s.capability, modNames),
		index:          controller.NewIndexController(s.index),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware("/metrics", "/api/health"))
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RequestLogger())
}

// NewApp connects to the configured stores and builds the application.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	return New(cfg, db, rdb)
}

// New builds the application on open connections. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		ctx:    ctx,
		cancel: cancel,
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewProvider(cfg.Tracing, docs.SwaggerInfo.Version)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		tracing.Install(tp)
		app.tracer = tp
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	if err := app.registerRoutes(router, controllers, cfg); err != nil {
		cancel()
		return nil, err
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("Log level applied", zap.String("level", logger.Level().String()))
	})

	return app, nil
}

// StartScheduler runs the module's cron hook on the configured spec.
func (a *App) StartScheduler() error {
	if !a.Config.Cron.Enabled {
		logger.Log.Info("Cron disabled")
		return nil
	}
	s := scheduler.New(a.Config.Site.Location(), cronTimeout)
	if err := s.Add(a.Config.Cron.Spec, model.ModuleName, a.services.adaptiveQuiz); err != nil {
		return err
	}
	s.Start()
	a.scheduler = s
	return nil
}

// RunCron runs the cron hook once.
func (a *App) RunCron(ctx context.Context) bool {
	return scheduler.RunOnce(ctx, model.ModuleName, a.services.adaptiveQuiz)
}

func (a *App) watchConfig() {
	if a.Config.File == "" {
		return
	}
	go func() {
		err := configwatcher.Watch(a.ctx, a.Config.File, func(cfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(cfg)
			}
		})
		if err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Run() error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := a.StartScheduler(); err != nil {
		return err
	}
	a.watchConfig()

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("listen: %w", err)
		}
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(ctx)

	logger.Log.Info("Server exiting")
	return runErr
}

// Close stops background work and releases connections.
func (a *App) Close(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop(ctx)
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	a.cancel()
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
