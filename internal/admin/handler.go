package admin

import (
	"log/slog"
	"net/http"

	"github.com/mrsante/records-management/internal/auth"
	"github.com/mrsante/records-management/internal/transport"
	"github.com/mrsante/records-management/pkg/logger"
)

type ServiceAPI interface {
	Stats(principal *auth.Principal) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.Service.Stats(principal)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
