package employees

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

// Handler wires employee and schedule endpoints.
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

// MountRoutes registers employee routes. Schedules carry their own
// module so reception staff can read timetables without employee CRUD.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployees, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployees, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployees, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployees, authz.ActionDelete))
		r.Delete("/{id}", h.delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployeesSched, authz.ActionView))
		r.Get("/{id}/schedule", h.getSchedule)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEmployeesSched, authz.ActionEdit))
		r.Put("/{id}/schedule", h.replaceSchedule)
	})
}

type employeePayload struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	HireDate string `json:"hireDate"`
	Status   string `json:"status"`
}

func (p employeePayload) values() map[string]string {
	return map[string]string{
		"name":     p.Name,
		"position": p.Position,
		"email":    p.Email,
		"phone":    p.Phone,
		"hireDate": p.HireDate,
		"status":   p.Status,
	}
}

func (p employeePayload) toEmployee() Employee {
	hired, _ := time.Parse("2006-01-02", p.HireDate)
	return Employee{
		Name:     p.Name,
		Position: p.Position,
		Email:    p.Email,
		Phone:    p.Phone,
		HireDate: hired,
		Status:   p.Status,
	}
}

type scheduleEntryPayload struct {
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Activity  string `json:"activity"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list employees", slog.Any("error", err))
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
	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	employee, err := h.service.Create(r.Context(), payload.toEmployee())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload employeePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	employee, err := h.service.Update(r.Context(), id, payload.toEmployee())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
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

func (h *Handler) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.GetSchedule(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

func (h *Handler) replaceSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Entries []scheduleEntryPayload `json:"entries"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	entries := make([]ScheduleEntry, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		values := map[string]string{
			"weekday":   e.Weekday,
			"startTime": e.StartTime,
			"endTime":   e.EndTime,
		}
		if errs := h.checker.Check(scheduleRules(h.checker), values); len(errs) > 0 {
			httpx.ValidationProblem(w, errs)
			return
		}
		entries = append(entries, ScheduleEntry{
			Weekday:   e.Weekday,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			Activity:  e.Activity,
		})
	}
	saved, err := h.service.ReplaceSchedule(r.Context(), id, entries)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": saved})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, httpx.ErrValidation)
		return 0, false
	}
	return id, true
}
