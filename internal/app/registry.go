package app

import (
	"database/sql"

	"worklane/internal/auth"
	"worklane/internal/document"
	"worklane/internal/invoice"
	"worklane/internal/leave"
	"worklane/internal/messaging/kafka"
	"worklane/internal/middleware"
	"worklane/internal/project"
	"worklane/internal/reimbursement"
	"worklane/internal/report"
	"worklane/internal/timesheet"
	"worklane/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	reimbursementRepo := reimbursement.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	userService := user.NewService(db, userRepo)
	authService := auth.NewService(userService, userRepo)
	projectService := project.NewService(db, projectRepo)
	timesheetService := timesheet.NewService(db, timesheetRepo, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	invoiceService := invoice.NewService(invoiceRepo)
	reimbursementService := reimbursement.NewService(db, reimbursementRepo, outboxRepo)
	documentService := document.NewService(userRepo, projectRepo)
	reportService := report.NewService(timesheetRepo, leaveRepo, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	projectHandler := project.NewHandler(projectService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	leaveHandler := leave.NewHandler(leaveService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	reimbursementHandler := reimbursement.NewHandler(reimbursementService)
	documentHandler := document.NewHandler(documentService)
	reportHandler := report.NewHandler(reportService, rdb)

	authMW := middleware.AuthMiddleware(userRepo)

	// --- Routes Registration ---
	api := router.Group("/api")
	api.Use(middleware.Idempotency(rdb))
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		user.RegisterRoutes(api, userHandler, authMW)
		project.RegisterRoutes(api, projectHandler, authMW)
		timesheet.RegisterRoutes(api, timesheetHandler, authMW)
		leave.RegisterRoutes(api, leaveHandler, authMW)
		invoice.RegisterRoutes(api, invoiceHandler, authMW)
		reimbursement.RegisterRoutes(api, reimbursementHandler, authMW)
		document.RegisterRoutes(api, documentHandler, authMW)
		report.RegisterRoutes(api, reportHandler, authMW)
	}

	return nil
}
