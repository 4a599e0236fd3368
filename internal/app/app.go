package app

import (
	"context"
	"emotest_backend/internal/config"
	"emotest_backend/internal/controller"
	"emotest_backend/internal/repository"
	"emotest_backend/internal/service"
	"emotest_backend/pkg/configwatcher"
	"emotest_backend/pkg/database"
	"emotest_backend/pkg/logger"
	"emotest_backend/pkg/monitoring"
	"emotest_backend/pkg/security"
	"emotest_backend/pkg/tracing"
	"errors"
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

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	limiter         *security.RateLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	question *repository.QuestionRepository
	progress *repository.ProgressRepository
}

type services struct {
	question *service.QuestionService
	progress *service.ProgressService
	flow     *service.TestFlowService
	stats    *service.StatsService
}

type controllers struct {
	test   *controller.TestController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		question: repository.NewQuestionRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.question = service.NewQuestionService(repos.question)
	s.progress = service.NewProgressService(repos.progress)
	s.stats = service.NewStatsService(s.question, repos.progress)

	var locker service.SubmissionLocker
	if cfg.Flow.LockSubmissions && rdb != nil {
		locker = service.NewRedisSubmissionLocker(rdb, cfg.Flow.LockTTL)
	}
	s.flow = service.NewTestFlowService(s.question, s.progress, locker)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		test:   controller.NewTestController(s.flow, s.progress, s.question, s.stats),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 健康检查和指标抓取不计入限流
	a.limiter = security.NewRateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		"/health", "/api/health", "/metrics",
	)
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、数据库和路由。数据库表结构在这里迁移。
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.buildRoutes(router, db, rdb)

	app.RegisterConfigCallback(logger.SetLevel)

	return app, nil
}

func (a *App) buildRoutes(router *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	repos := a.initRepositories(db)
	s := a.initServices(repos, a.Config, rdb)
	c := a.initControllers(s, db)
	a.registerRoutes(router, c)
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if a.Config.Server.WatchConfig && a.Config.ConfigPath != "" {
		if err := configwatcher.WatchConfig(ctx, a.Config.ConfigPath, a.reloadConfig); err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}

// Close 释放限流协程、数据库、Redis 和 tracer
func (a *App) Close(ctx context.Context) {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
