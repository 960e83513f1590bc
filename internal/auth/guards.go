package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/pkg/logger"
)

// Guards wraps the Engine into chi middleware. Route-level gating only;
// mutation guards that need target state (grade levels, dependent rows)
// live in the owning services and run before any write.
type Guards struct {
	engine *Engine
	logger *slog.Logger
}

func NewGuards(engine *Engine, logger *slog.Logger) *Guards {
	return &Guards{engine: engine, logger: logger}
}

func (g *Guards) Engine() *Engine {
	return g.engine
}

func (g *Guards) reject(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		g.logger.Error("failed to encode guard response", "error", err)
	}
}

// RequireAdmin gates broad administrative surfaces (stats, grade
// management, user administration).
func (g *Guards) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				g.reject(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
				return
			}

			if !g.engine.IsAdmin(principal) {
				logger.From(r.Context()).Warn("access denied: admin required",
					"grade_level", principal.GradeLevel)
				g.reject(w, internal.ErrAdminRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route on a single fine-grained permission key.
func (g *Guards) RequirePermission(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal == nil {
				g.reject(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
				return
			}

			if !g.engine.HasPermission(principal, key) {
				logger.From(r.Context()).Warn("access denied: missing permission",
					"required_permission", key)
				g.reject(w, internal.NewForbiddenError("insufficient permissions", internal.ErrCodeMissingPermission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
