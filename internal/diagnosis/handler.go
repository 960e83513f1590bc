package diagnosis

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
	ListRules(principal *auth.Principal) ([]*Rule, error)
	CreateRule(principal *auth.Principal, dto UpsertRuleDTO) (*Rule, error)
	UpdateRule(principal *auth.Principal, id int64, dto UpsertRuleDTO) (*Rule, error)
	DeleteRule(principal *auth.Principal, id int64) error
	Suggest(principal *auth.Principal, dto SuggestDTO) ([]*Suggestion, error)
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

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rules, err := h.Service.ListRules(principal)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rules)
}

func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpsertRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.CreateRule(principal, dto)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rule)
}

func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	var dto UpsertRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.UpdateRule(principal, id, dto)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rule)
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	if err := h.Service.DeleteRule(principal, id); err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SuggestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	suggestions, err := h.Service.Suggest(principal, dto)
	if err != nil {
		h.HandleAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, suggestions)
}
