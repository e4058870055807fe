package categories

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/validate"
)

// Handler wires sports category endpoints.
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

// MountRoutes registers category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleSportsCategory, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleSportsCategory, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleSportsCategory, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleSportsCategory, authz.ActionDelete))
		r.Delete("/{id}", h.delete)
	})
}

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AgeRange    string `json:"ageRange"`
	Status      string `json:"status"`
}

func (p categoryPayload) values() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"ageRange":    p.AgeRange,
		"status":      p.Status,
	}
}

func (p categoryPayload) toCategory() Category {
	return Category{
		Name:        p.Name,
		Description: p.Description,
		AgeRange:    p.AgeRange,
		Status:      p.Status,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
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
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	category, err := h.service.Create(r.Context(), payload.toCategory())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, category)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload categoryPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	category, err := h.service.Update(r.Context(), id, payload.toCategory())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
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
