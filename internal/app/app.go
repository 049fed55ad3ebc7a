package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perf_eval_backend/internal/config"
	"perf_eval_backend/internal/controller"
	"perf_eval_backend/internal/repository"
	"perf_eval_backend/internal/service"
	"perf_eval_backend/pkg/database"
	"perf_eval_backend/pkg/logger"
	"perf_eval_backend/pkg/monitoring"
	"perf_eval_backend/pkg/security"
	"perf_eval_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user       *repository.UserRepository
	topic      *repository.TopicRepository
	indicator  *repository.IndicatorRepository
	assignment *repository.AssignmentRepository
	result     *repository.ResultRepository
	comment    *repository.CommentRepository
	signature  *repository.SignatureRepository
	attachment *repository.AttachmentRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	topic      *service.TopicService
	indicator  *service.IndicatorService
	assignment *service.AssignmentService
	result     *service.ResultService
	report     *service.ReportService
	comment    *service.CommentService
	signature  *service.SignatureService
	storage    *service.StorageService
	attachment *service.AttachmentService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	topic      *controller.TopicController
	indicator  *controller.IndicatorController
	assignment *controller.AssignmentController
	result     *controller.ResultController
	report     *controller.ReportController
	comment    *controller.CommentController
	signature  *controller.SignatureController
	attachment *controller.AttachmentController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		topic:      repository.NewTopicRepository(db),
		indicator:  repository.NewIndicatorRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		result:     repository.NewResultRepository(db),
		comment:    repository.NewCommentRepository(db),
		signature:  repository.NewSignatureRepository(db),
		attachment: repository.NewAttachmentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg, logger.Log)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.topic = service.NewTopicService(repos.topic, logger.Log)
	s.indicator = service.NewIndicatorService(repos.indicator, repos.topic)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.user)
	s.result = service.NewResultService(repos.result, repos.assignment, repos.indicator, rdb)
	s.report = service.NewReportService(repos.result, repos.assignment, repos.comment, repos.signature, repos.user, rdb, cfg, logger.Log)
	s.comment = service.NewCommentService(repos.comment, repos.assignment)
	s.signature = service.NewSignatureService(repos.signature, repos.assignment)
	s.attachment = service.NewAttachmentService(repos.attachment, repos.assignment, repos.indicator, s.storage, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		topic:      controller.NewTopicController(s.topic, s.indicator),
		indicator:  controller.NewIndicatorController(s.indicator),
		assignment: controller.NewAssignmentController(s.assignment, s.result),
		result:     controller.NewResultController(s.result),
		report:     controller.NewReportController(s.report),
		comment:    controller.NewCommentController(s.comment),
		signature:  controller.NewSignatureController(s.signature),
		attachment: controller.NewAttachmentController(s.attachment),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Reports and cache invalidation degrade to direct reads without redis.
		logger.Log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("perf-eval-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
