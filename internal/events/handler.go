package events

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

// Handler wires event and appointment endpoints.
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

// MountRoutes registers event routes. Inscriptions ride on the event's
// Create permission since recording a sign-up creates data.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEvents, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Get("/{id}/inscriptions", h.listInscriptions)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEvents, authz.ActionCreate))
		r.Post("/", h.create)
		r.Post("/{id}/inscriptions", h.register)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEvents, authz.ActionEdit))
		r.Put("/{id}", h.update)
		r.Post("/{id}/cancel", h.cancel)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleEvents, authz.ActionDelete))
		r.Delete("/{id}", h.delete)
	})
}

// MountAppointmentRoutes registers the agenda endpoints under their own
// module.
func (h *Handler) MountAppointmentRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAppointments, authz.ActionView))
		r.Get("/", h.listAppointments)
		r.Get("/{id}", h.showAppointment)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAppointments, authz.ActionCreate))
		r.Post("/", h.createAppointment)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAppointments, authz.ActionEdit))
		r.Put("/{id}", h.updateAppointment)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleAppointments, authz.ActionDelete))
		r.Delete("/{id}", h.deleteAppointment)
	})
}

type eventPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

func (p eventPayload) values() map[string]string {
	return map[string]string{
		"name":      p.Name,
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
		"capacity":  strconv.Itoa(p.Capacity),
		"status":    p.Status,
	}
}

func (p eventPayload) toEvent() Event {
	start, _ := time.Parse("2006-01-02", p.StartDate)
	end, _ := time.Parse("2006-01-02", p.EndDate)
	return Event{
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		StartDate:   start,
		EndDate:     end,
		Capacity:    p.Capacity,
		Status:      p.Status,
	}
}

type appointmentPayload struct {
	Title     string `json:"title"`
	With      string `json:"with"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (p appointmentPayload) values() map[string]string {
	return map[string]string{
		"title":     p.Title,
		"date":      p.Date,
		"startTime": p.StartTime,
		"endTime":   p.EndTime,
		"status":    p.Status,
	}
}

func (p appointmentPayload) toAppointment() Appointment {
	date, _ := time.Parse("2006-01-02", p.Date)
	return Appointment{
		Title:     p.Title,
		With:      p.With,
		Location:  p.Location,
		Date:      date,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
		Status:    p.Status,
		Notes:     p.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list events", slog.Any("error", err))
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
	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, event)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload eventPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(eventRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	event, err := h.service.Create(r.Context(), payload.toEvent())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, event)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload eventPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(eventRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	event, err := h.service.Update(r.Context(), id, payload.toEvent())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, event)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(cancelRules(), map[string]string{"reason": payload.Reason}); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	event, err := h.service.Cancel(r.Context(), id, payload.Reason)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, event)
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

func (h *Handler) listInscriptions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	params := httpx.ParseListParams(r)
	entries, total, err := h.service.ListInscriptions(r.Context(), id, params)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, entries, params.Page, params.Limit, total)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload struct {
		ParticipantName string `json:"participantName"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	values := map[string]string{"participantName": payload.ParticipantName, "email": payload.Email}
	if errs := h.checker.Check(inscriptionRules(h.checker), values); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	entry, err := h.service.Register(r.Context(), Inscription{
		EventID:         id,
		ParticipantName: payload.ParticipantName,
		Email:           payload.Email,
		Phone:           payload.Phone,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.ListAppointments(r.Context(), params)
	if err != nil {
		h.logger.Error("list appointments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.List(w, items, params.Page, params.Limit, total)
}

func (h *Handler) showAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	appt, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, appt)
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var payload appointmentPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(appointmentRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	appt, err := h.service.CreateAppointment(r.Context(), payload.toAppointment())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, appt)
}

func (h *Handler) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload appointmentPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(appointmentRules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	appt, err := h.service.UpdateAppointment(r.Context(), id, payload.toAppointment())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, appt)
}

func (h *Handler) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
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
