package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/mrsante/records-management/internal/admin"
	"github.com/mrsante/records-management/internal/appointment"
	"github.com/mrsante/records-management/internal/auth"
	"github.com/mrsante/records-management/internal/diagnosis"
	"github.com/mrsante/records-management/internal/grade"
	"github.com/mrsante/records-management/internal/patient"
	"github.com/mrsante/records-management/internal/report"
	"github.com/mrsante/records-management/internal/transport/middleware"
	"github.com/mrsante/records-management/internal/transport/swagger"
	"github.com/mrsante/records-management/internal/user"
)

type Handlers struct {
	Auth        *auth.Handler
	Guards      *auth.Guards
	User        *user.Handler
	Grade       *grade.Handler
	Patient     *patient.Handler
	Report      *report.Handler
	Appointment *appointment.Handler
	Diagnosis   *diagnosis.Handler
	Admin       *admin.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Public intake: appointment requests arrive without credentials.
		r.Post("/appointments/intake", h.Appointment.Intake)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)
			pr.Put("/users/me/profile", h.User.UpdateProfile)

			pr.With(h.Guards.RequirePermission(auth.PermViewRoster)).
				Get("/roster", h.User.Roster)

			pr.Route("/users", func(ur chi.Router) {
				ur.Use(h.Guards.RequirePermission(auth.PermManageUsers))
				ur.Get("/", h.User.List)
				ur.Post("/", h.User.Create)
				ur.Get("/{id}", h.User.Get)
				ur.Put("/{id}", h.User.Update)
				ur.Delete("/{id}", h.User.Delete)
			})

			pr.Route("/grades", func(gr chi.Router) {
				gr.Use(h.Guards.RequireAdmin())
				gr.Get("/", h.Grade.List)
				gr.Post("/", h.Grade.Create)
				gr.Put("/{id}", h.Grade.Update)
				gr.Delete("/{id}", h.Grade.Delete)
			})

			pr.Route("/patients", func(ptr chi.Router) {
				ptr.Group(func(vr chi.Router) {
					vr.Use(h.Guards.RequirePermission(auth.PermViewPatients))
					vr.Get("/", h.Patient.List)
					vr.Get("/{id}", h.Patient.Get)
				})

				ptr.Group(func(cr chi.Router) {
					cr.Use(h.Guards.RequirePermission(auth.PermCreatePatients))
					cr.Post("/", h.Patient.Create)
					cr.Put("/{id}", h.Patient.Update)
				})

				ptr.Group(func(dr chi.Router) {
					dr.Use(h.Guards.RequirePermission(auth.PermDeletePatients))
					dr.Delete("/{id}", h.Patient.Delete)
				})
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(h.Guards.RequirePermission(auth.PermViewPatients))
				rr.Get("/", h.Report.List)
				rr.Get("/{id}", h.Report.Get)
				rr.Post("/", h.Report.Create)
				rr.Put("/{id}", h.Report.Update)
				rr.Delete("/{id}", h.Report.Delete)
			})

			pr.Route("/appointments", func(ar chi.Router) {
				ar.Use(h.Guards.RequirePermission(auth.PermManageAppointments))
				ar.Get("/", h.Appointment.List)
				ar.Get("/stats", h.Appointment.Stats)
				ar.Get("/{id}", h.Appointment.Get)
				ar.Patch("/{id}/assign", h.Appointment.Assign)
				ar.Patch("/{id}/complete", h.Appointment.Complete)
				ar.Patch("/{id}/cancel", h.Appointment.Cancel)
				ar.Delete("/{id}", h.Appointment.Delete)
			})

			pr.Route("/diagnosis", func(dr chi.Router) {
				dr.Post("/suggest", h.Diagnosis.Suggest)
				dr.Get("/rules", h.Diagnosis.ListRules)

				dr.Group(func(mr chi.Router) {
					mr.Use(h.Guards.RequireAdmin())
					mr.Post("/rules", h.Diagnosis.CreateRule)
					mr.Put("/rules/{id}", h.Diagnosis.UpdateRule)
					mr.Delete("/rules/{id}", h.Diagnosis.DeleteRule)
				})
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(h.Guards.RequireAdmin())
				ar.Get("/stats", h.Admin.Stats)
			})
		})
	})
}
