package athletes

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

// Handler wires athlete and attendance endpoints. Athlete CRUD and
// attendance are gated by separate modules so a coach role can record
// attendance without being able to edit athlete records.
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

// MountRoutes registers athlete routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletes, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletes, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletes, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletes, authz.ActionDelete))
		r.Delete("/{id}", h.delete)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletesAssist, authz.ActionView))
		r.Get("/{id}/attendance", h.listAttendance)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAthletesAssist, authz.ActionCreate))
		r.Post("/{id}/attendance", h.recordAttendance)
	})
}

type athletePayload struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	BirthDate  string `json:"birthDate"`
	CategoryID int64  `json:"categoryId"`
	Guardian   string `json:"guardian"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
}

func (p athletePayload) values() map[string]string {
	categoryID := ""
	if p.CategoryID > 0 {
		categoryID = strconv.FormatInt(p.CategoryID, 10)
	}
	return map[string]string{
		"firstName":  p.FirstName,
		"lastName":   p.LastName,
		"birthDate":  p.BirthDate,
		"categoryId": categoryID,
		"status":     p.Status,
	}
}

func (p athletePayload) toAthlete() Athlete {
	birth, _ := time.Parse("2006-01-02", p.BirthDate)
	return Athlete{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		BirthDate:  birth,
		CategoryID: p.CategoryID,
		Guardian:   p.Guardian,
		Phone:      p.Phone,
		Status:     p.Status,
	}
}

type attendancePayload struct {
	Date    string `json:"date"`
	Present bool   `json:"present"`
	Notes   string `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list athletes", slog.Any("error", err))
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
	athlete, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, athlete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload athletePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	athlete, err := h.service.Create(r.Context(), payload.toAthlete())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, athlete)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload athletePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	athlete, err := h.service.Update(r.Context(), id, payload.toAthlete())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, athlete)
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

func (h *Handler) listAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	params := httpx.ParseListParams(r)
	entries, total, err := h.service.ListAttendance(r.Context(), id, params)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, entries, params.Page, params.Limit, total)
}

func (h *Handler) recordAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload attendancePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	values := map[string]string{"date": payload.Date, "notes": payload.Notes}
	if errs := h.checker.Check(attendanceRules(h.checker), values); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	date, _ := time.Parse("2006-01-02", payload.Date)
	entry, err := h.service.RecordAttendance(r.Context(), Attendance{
		AthleteID: id,
		Date:      date,
		Present:   payload.Present,
		Notes:     payload.Notes,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, httpx.ErrValidation)
		return 0, false
	}
	return id, true
}
