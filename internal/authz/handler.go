package authz

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubdesk/clubdesk/internal/platform/httpx"
	"github.com/clubdesk/clubdesk/internal/shared"
)

// Handler exposes the caller's effective permissions to the dashboard.
type Handler struct {
	roles           RoleSource
	refreshInterval time.Duration
}

// NewHandler builds a Handler. The refresh interval is advertised to
// clients so they poll at the cadence the server expects.
func NewHandler(roles RoleSource, refreshInterval time.Duration) *Handler {
	if refreshInterval <= 0 {
		refreshInterval = 30 * time.Second
	}
	return &Handler{roles: roles, refreshInterval: refreshInterval}
}

// MountRoutes registers permission routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.effectivePermissions)
	r.Get("/modules", h.accessibleModules)
}

type permissionsResponse struct {
	Role           string                     `json:"role"`
	Matrix         map[Module]map[Action]bool `json:"matrix"`
	Modules        []Module                   `json:"modules"`
	RefreshSeconds int                        `json:"refreshSeconds"`
}

func (h *Handler) effectivePermissions(w http.ResponseWriter, r *http.Request) {
	role, ok := h.requesterRole(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	matrix := role.EffectiveMatrix()
	out := make(map[Module]map[Action]bool, len(matrix))
	for mod, am := range matrix {
		out[mod] = am
	}
	httpx.JSON(w, http.StatusOK, permissionsResponse{
		Role:           role.Name(),
		Matrix:         out,
		Modules:        role.AccessibleModules(),
		RefreshSeconds: int(h.refreshInterval / time.Second),
	})
}

func (h *Handler) accessibleModules(w http.ResponseWriter, r *http.Request) {
	role, ok := h.requesterRole(r)
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string][]Module{"modules": role.AccessibleModules()})
}

func (h *Handler) requesterRole(r *http.Request) (Role, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return Role{}, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return Role{}, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Role{}, false
	}
	role, err := h.roles.RoleForUser(r.Context(), userID)
	if err != nil {
		return Role{}, false
	}
	return role, true
}
