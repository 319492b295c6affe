package app

import (
	"go-hrms/internal/access"
	"go-hrms/internal/attendance"
	"go-hrms/internal/company"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/notification"
	"go-hrms/internal/profile"
	"go-hrms/internal/salary"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
)

func registerModules(router *gin.Engine, infra *Infra) error {
	db := infra.SQLDB
	gormDB := infra.GormDB
	rdb := infra.Redis
	now := infra.Clock()
	logger := infra.Logger

	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileRepo := profile.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)

	// --- Access gate ---
	gate, err := access.NewGate(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(companyRepo, logger)
	profileService := profile.NewService(
		db,
		profileRepo,
		counterRepo,
		outboxRepo,
		companyService,
		gate,
		notification.NewLogNotifier(logger),
		rdb,
		now,
		logger,
	)
	attendanceService := attendance.NewService(db, attendanceRepo, gate, now, logger)
	leaveService := leave.NewService(db, leaveRepo, gate, outboxRepo, now, logger)
	salaryService := salary.NewService(salaryRepo, gate, now, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	companyHandler := company.NewHandler(companyService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	profileHandler := profile.NewHandler(profileService, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(20, 40),
		middleware.Identity(infra.Config.JWT.Secret),
		middleware.ContextLogger(logger),
		access.Resolve(profileService),
		middleware.Idempotency(rdb),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler, gate)
		company.RegisterRoutes(api, companyHandler)
		leave.RegisterRoutes(api, leaveHandler, gate)
		profile.RegisterRoutes(api, profileHandler, gate)
		salary.RegisterRoutes(api, salaryHandler, gate)
	}

	return nil
}
