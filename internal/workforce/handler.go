package workforce

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/validate"
)

// Handler wires temporary worker and team endpoints.
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

// MountWorkerRoutes registers temporary worker routes.
func (h *Handler) MountWorkerRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempWorkers, authz.ActionView))
		r.Get("/", h.listWorkers)
		r.Get("/{id}", h.showWorker)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempWorkers, authz.ActionCreate))
		r.Post("/", h.createWorker)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempWorkers, authz.ActionEdit))
		r.Put("/{id}", h.updateWorker)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempWorkers, authz.ActionDelete))
		r.Delete("/{id}", h.deleteWorker)
	})
}

// MountTeamRoutes registers temporary team routes.
func (h *Handler) MountTeamRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempTeams, authz.ActionView))
		r.Get("/", h.listTeams)
		r.Get("/{id}", h.showTeam)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempTeams, authz.ActionCreate))
		r.Post("/", h.createTeam)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempTeams, authz.ActionEdit))
		r.Put("/{id}", h.updateTeam)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleTempTeams, authz.ActionDelete))
		r.Delete("/{id}", h.deleteTeam)
	})
}

type workerPayload struct {
	Name      string  `json:"name"`
	Task      string  `json:"task"`
	Phone     string  `json:"phone"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	DailyRate float64 `json:"dailyRate"`
	Status    string  `json:"status"`
}

func (p workerPayload) values() map[string]string {
	return map[string]string{
		"name":      p.Name,
		"task":      p.Task,
		"phone":     p.Phone,
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
		"status":    p.Status,
	}
}

func (p workerPayload) toWorker() Worker {
	start, _ := time.Parse("2006-01-02", p.StartDate)
	end, _ := time.Parse("2006-01-02", p.EndDate)
	return Worker{
		Name:      p.Name,
		Task:      p.Task,
		Phone:     p.Phone,
		StartDate: start,
		EndDate:   end,
		DailyRate: p.DailyRate,
		Status:    p.Status,
	}
}

type teamPayload struct {
	Name    string   `json:"name"`
	Purpose string   `json:"purpose"`
	Members []string `json:"members"`
	Status  string   `json:"status"`
}

func (p teamPayload) toTeam() Team {
	return Team{
		Name:    p.Name,
		Purpose: p.Purpose,
		Members: p.Members,
		Status:  p.Status,
	}
}

func (h *Handler) listWorkers(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.ListWorkers(r.Context(), params)
	if err != nil {
		h.logger.Error("list temporary workers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, params.Page, params.Limit, total)
}

func (h *Handler) showWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	worker, err := h.service.GetWorker(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, worker)
}

func (h *Handler) createWorker(w http.ResponseWriter, r *http.Request) {
	var payload workerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(workerRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	worker, err := h.service.CreateWorker(r.Context(), payload.toWorker())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, worker)
}

func (h *Handler) updateWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload workerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(workerRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	worker, err := h.service.UpdateWorker(r.Context(), id, payload.toWorker())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, worker)
}

func (h *Handler) deleteWorker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteWorker(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.ListTeams(r.Context(), params)
	if err != nil {
		h.logger.Error("list temporary teams", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, params.Page, params.Limit, total)
}

func (h *Handler) showTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	team, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, team)
}

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	var payload teamPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	values := map[string]string{"name": payload.Name, "purpose": payload.Purpose, "status": payload.Status}
	if errs := h.checker.Check(teamRules(), values); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	team, err := h.service.CreateTeam(r.Context(), payload.toTeam())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, team)
}

func (h *Handler) updateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload teamPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	values := map[string]string{"name": payload.Name, "purpose": payload.Purpose, "status": payload.Status}
	if errs := h.checker.Check(teamRules(), values); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	team, err := h.service.UpdateTeam(r.Context(), id, payload.toTeam())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, team)
}

func (h *Handler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteTeam(r.Context(), id); err != nil {
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
