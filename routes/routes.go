package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/victorrChoi/dalgubul/config"
	"github.com/victorrChoi/dalgubul/handlers"
	"github.com/victorrChoi/dalgubul/middlewares"
	"github.com/victorrChoi/dalgubul/models"
	"github.com/victorrChoi/dalgubul/services"
	"github.com/victorrChoi/dalgubul/store"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, st *store.Store) {
	// ===== Services =====
	studentSvc := services.NewStudentService(st)
	outingSvc := services.NewOutingService(st)
	scoreSvc := services.NewScoreService(st)
	paymentSvc := services.NewPaymentService(st)
	reportSvc := services.NewReportService(st)

	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg, studentSvc)
	std := handlers.NewStudentHandler(studentSvc)
	out := handlers.NewOutingHandler(outingSvc)
	sco := handlers.NewScoreHandler(scoreSvc)
	pay := handlers.NewPaymentHandler(paymentSvc)
	rep := handlers.NewReportHandler(reportSvc)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/admin/login", auth.AdminLogin)
	e.POST("/auth/student/login", auth.StudentLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Admin routes =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/students", std.List)
	admin.POST("/students", std.Create)
	admin.PUT("/students/:student_no", std.Update)
	admin.DELETE("/students/:id", std.Delete)

	admin.GET("/outings", out.List)
	admin.POST("/outings", out.Create)
	admin.PUT("/outings/:id/status", out.SetStatus)

	admin.GET("/scores", sco.List)
	admin.POST("/scores", sco.Create)

	admin.GET("/payments", pay.List)
	admin.POST("/payments", pay.Create)

	admin.GET("/report", rep.Download)

	// ===== Student routes =====
	student := e.Group("/student", authMW, middlewares.RequireRole(models.RoleStudent))

	student.GET("/me", std.Me)
	student.GET("/outings", out.List)
	student.POST("/outings", out.Create)
	student.POST("/outings/:id/cancel", out.Cancel)
	student.GET("/scores", sco.List)
	student.GET("/scores/totals", sco.MyTotals)
	student.GET("/payments", pay.List)
}
