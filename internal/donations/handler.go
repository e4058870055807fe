package donations

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/shared"
	"github.com/clubdesk/clubdesk/internal/validate"
)

// Handler wires donation endpoints. There is no hard delete; the Delete
// permission gates cancellation.
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

// MountRoutes registers donation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonations, authz.ActionView))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonations, authz.ActionCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonations, authz.ActionEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.ModuleDonations, authz.ActionDelete))
		r.Post("/{id}/cancel", h.cancel)
	})
}

type donationPayload struct {
	DonorID int64   `json:"donorId"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
	Date    string  `json:"date"`
	Notes   string  `json:"notes"`
}

func (p donationPayload) values() map[string]string {
	donorID := ""
	if p.DonorID > 0 {
		donorID = strconv.FormatInt(p.DonorID, 10)
	}
	amount := ""
	if p.Amount != 0 {
		amount = strconv.FormatFloat(p.Amount, 'f', -1, 64)
	}
	return map[string]string{
		"donorId": donorID,
		"amount":  amount,
		"method":  p.Method,
		"date":    p.Date,
		"notes":   p.Notes,
	}
}

func (p donationPayload) toDonation() Donation {
	date, _ := time.Parse("2006-01-02", p.Date)
	return Donation{
		DonorID: p.DonorID,
		Amount:  p.Amount,
		Method:  p.Method,
		Date:    date,
		Notes:   p.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params := httpx.ParseListParams(r)
	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.logger.Error("list donations", slog.Any("error", err))
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
	donation, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, donation)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload donationPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	donation, err := h.service.Create(r.Context(), payload.toDonation(), actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, donation)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload donationPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if errs := h.checker.Check(rules(h.checker), payload.values()); len(errs) > 0 {
		httpx.ValidationProblem(w, errs)
		return
	}
	donation, err := h.service.Update(r.Context(), id, payload.toDonation(), actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, donation)
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
	donation, err := h.service.Cancel(r.Context(), id, payload.Reason, actorID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, donation)
}

func actorID(r *http.Request) int64 {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, _ := strconv.ParseInt(sess.User(), 10, 64)
	return id
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, httpx.ErrValidation)
		return 0, false
	}
	return id, true
}
