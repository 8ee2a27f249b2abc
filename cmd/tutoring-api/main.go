package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hkn-dev/tutoring-api/api/swagger"
	"github.com/hkn-dev/tutoring-api/internal/handler"
	"github.com/hkn-dev/tutoring-api/internal/middleware"
	"github.com/hkn-dev/tutoring-api/internal/models"
	"github.com/hkn-dev/tutoring-api/internal/repository"
	"github.com/hkn-dev/tutoring-api/internal/service"
	"github.com/hkn-dev/tutoring-api/pkg/cache"
	"github.com/hkn-dev/tutoring-api/pkg/config"
	"github.com/hkn-dev/tutoring-api/pkg/database"
	"github.com/hkn-dev/tutoring-api/pkg/export"
	"github.com/hkn-dev/tutoring-api/pkg/logger"
	corsmiddleware "github.com/hkn-dev/tutoring-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hkn-dev/tutoring-api/pkg/middleware/requestid"
)

// @title HKN Tutoring API
// @version 1.0.0
// @description Tutor availability collection and slot scheduling service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional: the service degrades to uncached reads when it
	// is unreachable at startup.
	var cacheRepo service.CacheRepository
	cacheEnabled := cfg.Availability.CacheEnabled
	if cacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
			cacheEnabled = false
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			cacheRepo = repo
			defer repo.Close() //nolint:errcheck
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, cacheEnabled)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	logisticsRepo := repository.NewLogisticsRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	semesterRepo := repository.NewSemesterRepository(db)
	courseRepo := repository.NewCourseRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "tutoring-api",
	})
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, userRepo, cacheSvc, cfg.Availability.CacheTTL, validate, logr)
	logisticsSvc := service.NewLogisticsService(logisticsRepo, semesterRepo, userRepo, validate, logr)
	slotSvc := service.NewSlotService(slotRepo, logisticsRepo, roomRepo, userRepo, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	autocompleteSvc := service.NewAutocompleteService(userRepo, courseRepo, logisticsRepo, logr)
	exportSvc := service.NewExportService(availabilityRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	authHandler := handler.NewAuthHandler(authSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc, exportSvc)
	logisticsHandler := handler.NewLogisticsHandler(logisticsSvc)
	slotHandler := handler.NewSlotHandler(slotSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	autocompleteHandler := handler.NewAutocompleteHandler(autocompleteSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)

	tutoring := api.Group("/tutoring")
	tutoring.GET("/api/slots", slotHandler.ListAll)

	authed := tutoring.Group("", middleware.JWT(authSvc))
	authed.GET("/signup", availabilityHandler.Form)
	authed.POST("/signup", availabilityHandler.Submit)
	authed.GET("/signup/success", availabilityHandler.Success)
	authed.GET("/autocomplete/tutor", autocompleteHandler.Tutors)
	authed.GET("/autocomplete/course", autocompleteHandler.Courses)

	staff := authed.Group("", middleware.RequireStaff())
	staff.GET("/api/availability", availabilityHandler.ListAll)
	staff.GET("/api/availability/export", availabilityHandler.Export)

	staff.GET("/rooms", roomHandler.List)
	staff.GET("/rooms/:id", roomHandler.Get)
	staff.POST("/rooms", middleware.Audit(userRepo, models.AuditActionRoomWrite, "room"), roomHandler.Create)
	staff.PUT("/rooms/:id", middleware.Audit(userRepo, models.AuditActionRoomWrite, "room"), roomHandler.Update)
	staff.DELETE("/rooms/:id", middleware.Audit(userRepo, models.AuditActionRoomWrite, "room"), roomHandler.Delete)

	staff.GET("/logistics", logisticsHandler.List)
	staff.GET("/logistics/most-recent", logisticsHandler.MostRecent)
	staff.GET("/logistics/:id", logisticsHandler.Get)
	staff.POST("/logistics", middleware.Audit(userRepo, models.AuditActionLogisticsWrite, "logistics"), logisticsHandler.Create)
	staff.PUT("/logistics/:id/tutors", middleware.Audit(userRepo, models.AuditActionLogisticsWrite, "logistics"), logisticsHandler.SetTutorPools)
	staff.DELETE("/logistics/:id", middleware.Audit(userRepo, models.AuditActionLogisticsWrite, "logistics"), logisticsHandler.Delete)

	staff.GET("/slots/:id", slotHandler.Get)
	staff.POST("/slots", middleware.Audit(userRepo, models.AuditActionSlotWrite, "slot"), slotHandler.Create)
	staff.PUT("/slots/:id", middleware.Audit(userRepo, models.AuditActionSlotWrite, "slot"), slotHandler.Update)
	staff.DELETE("/slots/:id", middleware.Audit(userRepo, models.AuditActionSlotWrite, "slot"), slotHandler.Delete)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
