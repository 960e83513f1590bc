package appointment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mrsante/records-management/internal/auth"
	"github.com/mrsante/records-management/internal/transport"
	"github.com/mrsante/records-management/pkg/logger"
)

type ServiceAPI interface {
	Intake(dto IntakeDTO) (*Appointment, error)
	List(principal *auth.Principal, query ListQuery) ([]*Appointment, error)
	Get(principal *auth.Principal, id int64) (*Appointment, error)
	Assign(principal *auth.Principal, id int64) (*Appointment, error)
	Complete(principal *auth.Principal, id int64, dto CompleteDTO) (*Appointment, error)
	Cancel(principal *auth.Principal, id int64) (*Appointment, error)
	Delete(principal *auth.Principal, id int64) error
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

// Intake is the only unauthenticated write endpoint in the API.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	var dto IntakeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.Service.Intake(dto)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, appt)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query := ListQuery{
		Status:       r.URL.Query().Get("status"),
		AssignedToMe: r.URL.Query().Get("assigned_to_me") == "true",
	}

	appts, err := h.Service.List(principal, query)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, appts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appt, err := h.Service.Get(principal, id)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appt, err := h.Service.Assign(principal, id)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	var dto CompleteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.Service.Complete(principal, id, dto)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appt, err := h.Service.Cancel(principal, id)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	if err := h.Service.Delete(principal, id); err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
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
