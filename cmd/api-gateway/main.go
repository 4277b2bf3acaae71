package main

import (
	"fmt"
	"log"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shiftsync/timetable-api/api/swagger"
	internalhandler "github.com/shiftsync/timetable-api/internal/handler"
	internalmiddleware "github.com/shiftsync/timetable-api/internal/middleware"
	"github.com/shiftsync/timetable-api/internal/repository"
	"github.com/shiftsync/timetable-api/internal/service"
	"github.com/shiftsync/timetable-api/pkg/cache"
	"github.com/shiftsync/timetable-api/pkg/config"
	"github.com/shiftsync/timetable-api/pkg/database"
	"github.com/shiftsync/timetable-api/pkg/logger"
	corsmiddleware "github.com/shiftsync/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/shiftsync/timetable-api/pkg/middleware/requestid"
)

// @title Timetable Generation API
// @version 1.0.0
// @description Weekly academic timetable generator built on a finite-domain Boolean constraint solver.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	healthHandler := internalhandler.NewHealthHandler(metricsSvc)

	// Both Postgres (the audit trail) and Redis (the response cache) are
	// optional: the generator is fully functional, and fully
	// deterministic, without either. A connection failure is logged and
	// the corresponding seam stays nil rather than aborting boot.
	var runReader internalhandler.RunReader
	var runRecorder *repository.RunRepository
	if cfg.Scheduler.AuditDB {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Warnw("audit database disabled: connection failed", "error", err)
		} else {
			defer db.Close()
			runRecorder = repository.NewRunRepository(db)
			runReader = runRecorder
		}
	}

	var cacheRepo *repository.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("response cache disabled: redis connection failed", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", healthHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		registerPprof(r)
	}

	schedulerSvc := service.NewSchedulerService(
		nil, // validator.New() default
		logr,
		cacheRepo,
		runRecorder,
		metricsSvc,
		cfg.Scheduler.SolveBudget,
		cfg.Redis.CacheTTL,
	)
	schedulerHandler := internalhandler.NewSchedulerHandler(schedulerSvc, runReader)
	substituteHandler := internalhandler.NewSubstituteHandler(service.NewSubstituteService())

	api := r.Group(cfg.APIPrefix)
	api.POST("/generate", schedulerHandler.Generate)
	api.POST("/generate/export.pdf", schedulerHandler.ExportPDF)
	api.POST("/generate/export.csv", schedulerHandler.ExportCSV)
	api.GET("/runs/:id", schedulerHandler.GetRun)
	api.POST("/substitute-search", substituteHandler.Search)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerPprof(r *gin.Engine) {
	group := r.Group("/debug/pprof")
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.POST("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
}
