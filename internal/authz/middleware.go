package authz

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/clubdesk/clubdesk/internal/shared"
)

// RoleSource resolves the effective role for a user, usually backed by the
// roles service.
type RoleSource interface {
	RoleForUser(ctx context.Context, userID int64) (Role, error)
}

// Middleware wires permission checks into HTTP handlers. Denial is a 403,
// never an error surface; resolution failures fail closed.
type Middleware struct {
	Roles  RoleSource
	Logger *slog.Logger
}

// Require ensures the current user may perform action a on module m.
func (mw Middleware) Require(m Module, a Action) func(http.Handler) http.Handler {
	return mw.guard(func(role Role) bool {
		return role.HasPermission(m, a)
	})
}

// RequireAnyOf ensures at least one of the checks passes.
func (mw Middleware) RequireAnyOf(checks ...Check) func(http.Handler) http.Handler {
	return mw.guard(func(role Role) bool {
		return role.HasAny(checks)
	})
}

// RequireAllOf ensures every check passes.
func (mw Middleware) RequireAllOf(checks ...Check) func(http.Handler) http.Handler {
	return mw.guard(func(role Role) bool {
		return role.HasAll(checks)
	})
}

// RequireModule ensures the current user has any access to the module.
func (mw Middleware) RequireModule(m Module) func(http.Handler) http.Handler {
	return mw.guard(func(role Role) bool {
		return role.HasModuleAccess(m)
	})
}

func (mw Middleware) guard(allowed func(Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := mw.currentRole(r)
			if !ok || !allowed(role) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (mw Middleware) currentRole(r *http.Request) (Role, bool) {
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
		if mw.Logger != nil {
			mw.Logger.Error("authz parse user id", slog.String("value", raw))
		}
		return Role{}, false
	}
	role, err := mw.Roles.RoleForUser(r.Context(), userID)
	if err != nil {
		if mw.Logger != nil {
			mw.Logger.Error("authz resolve role", slog.Any("error", err))
		}
		return Role{}, false
	}
	return role, true
}
