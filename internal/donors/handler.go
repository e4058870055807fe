package donors

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/validate"
)

// Handler wires donor and sponsor endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	authz   authz.Middleware
	checker *validate.Engine
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service, mw authz.Middleware, checker *validate.Engine) *Handler {
	return &Handler{logger: logger, service: service, authz: mw, checker: checker}
}

// MountRoutes registers donor routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonors, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonors, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonors, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonors, authz.ActionDelete))
		r.Delete("/{id}", h.delete)
	})
}

type donorPayload struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Notes  string `json:"notes"`
	Status string `json:"status"`
}

func (p donorPayload) values() map[string]string {
	return map[string]string{
		"name":   p.Name,
		"type":   p.Type,
		"email":  p.Email,
		"phone":  p.Phone,
		"notes":  p.Notes,
		"status": p.Status,
	}
}

func (p donorPayload) toDonor() Donor {
	return Donor{
		Name:   p.Name,
		Type:   p.Type,
		Email:  p.Email,
		Phone:  p.Phone,
		Notes:  p.Notes,
		Status: p.Status,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list donors", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, params.Page, params.Limit, total)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	donor, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, donor)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload donorPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	donor, err := h.service.Create(r.Context(), payload.toDonor())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, donor)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload donorPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	donor, err := h.service.Update(r.Context(), id, payload.toDonor())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, donor)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, httpx.ErrValidation)
		return 0, false
	}
	return id, true
}
