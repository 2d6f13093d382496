package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushq/faculty-portal-api/api/swagger"
	"github.com/campushq/faculty-portal-api/internal/handler"
	"github.com/campushq/faculty-portal-api/internal/middleware"
	"github.com/campushq/faculty-portal-api/internal/repository"
	"github.com/campushq/faculty-portal-api/internal/service"
	"github.com/campushq/faculty-portal-api/pkg/cache"
	"github.com/campushq/faculty-portal-api/pkg/config"
	"github.com/campushq/faculty-portal-api/pkg/database"
	"github.com/campushq/faculty-portal-api/pkg/logger"
	"github.com/campushq/faculty-portal-api/pkg/mailer"
	corsmiddleware "github.com/campushq/faculty-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/faculty-portal-api/pkg/middleware/requestid"
)

// @title Faculty Portal API
// @version 1.0.0
// @description Departmental scheduling and communication portal for academic staff
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()
	mail := mailer.New(mailer.Options{
		Provider:      cfg.Mail.Provider,
		SendgridKey:   cfg.Mail.SendgridKey,
		FromName:      cfg.Mail.FromName,
		FromAddress:   cfg.Mail.FromAddress,
		SubjectPrefix: cfg.Mail.SubjectPrefix,
	}, logr)

	teacherRepo := repository.NewTeacherRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)

	sweep := cfg.Portal.ExpirySweep

	accountSvc := service.NewAccountService(teacherRepo, validate, logr, cfg.Portal.TeacherCodeAttempts)
	authSvc := service.NewAuthService(teacherRepo, sessionRepo, validate, logr, service.AuthConfig{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		AccessExpiry:  cfg.JWT.Expiration,
		RefreshExpiry: cfg.JWT.RefreshExpiration,
	})
	rosterSvc := service.NewRosterService(departmentRepo, courseRepo, scheduleRepo, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, leaveRepo, metrics, logr, sweep)
	exportSvc := service.NewExportService(scheduleSvc, logr)
	meetingSvc := service.NewMeetingService(meetingRepo, teacherRepo, mail, metrics, validate, logr, sweep)
	leaveSvc := service.NewLeaveService(leaveRepo, metrics, validate, logr, sweep)

	accountHandler := handler.NewAccountHandler(accountSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc)
	meetingHandler := handler.NewMeetingHandler(meetingSvc)
	leaveHandler := handler.NewLeaveHandler(leaveSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

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
	{
		api.POST("/accounts", accountHandler.Signup)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		authed := api.Group("", middleware.JWT(authSvc))
		{
			authed.POST("/auth/logout", authHandler.Logout)

			authed.GET("/accounts", accountHandler.List)
			authed.GET("/accounts/me", accountHandler.Me)
			authed.PUT("/accounts/me", accountHandler.UpdateMe)
			authed.DELETE("/accounts/me", accountHandler.DeleteMe)

			authed.GET("/departments/:code/roster", rosterHandler.Get)

			authed.GET("/schedule", scheduleHandler.List)
			authed.GET("/schedule/export", scheduleHandler.Export)

			authed.GET("/meetings", meetingHandler.List)
			authed.POST("/meetings", meetingHandler.Create)

			authed.GET("/leaves", leaveHandler.List)
			authed.POST("/leaves", leaveHandler.Create)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
