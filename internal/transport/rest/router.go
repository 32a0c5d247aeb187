package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prasetyarht/timesheet-management/internal/auth"
	"github.com/prasetyarht/timesheet-management/internal/holiday"
	"github.com/prasetyarht/timesheet-management/internal/report"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/transport/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, timesheetHandler *timesheet.Handler, holidayHandler *holiday.Handler, reportHandler *report.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/timesheets", func(tr chi.Router) {
				tr.Get("/", timesheetHandler.ListTimesheets)
				tr.Get("/detail", timesheetHandler.GetTimesheetDetail)
				tr.Post("/entries", timesheetHandler.CreateEntry)
				tr.Patch("/entries", timesheetHandler.UpdateEntries)
				tr.Delete("/entries/{entryCode}", timesheetHandler.DeleteEntry)
				tr.Post("/review", timesheetHandler.Review)
			})

			pr.Route("/holidays", func(hr chi.Router) {
				hr.Get("/", holidayHandler.ListHolidays)

				hr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireRoles(auth.RoleSuperAdmin, auth.RoleHR))
					ar.Post("/", holidayHandler.CreateHoliday)
				})
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(authHandler.RequireRoles(auth.RoleSuperAdmin, auth.RoleHR, auth.RoleManager))
				rr.Get("/projects", reportHandler.GetProjectReports)
				rr.Get("/weekly", reportHandler.GetWeeklyStatusReport)
			})
		})
	})
}
