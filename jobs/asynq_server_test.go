package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/shared"
)

type staticRoleSource struct {
	role authz.Role
}

func (s staticRoleSource) RoleForUser(context.Context, int64) (authz.Role, error) {
	return s.role, nil
}

func newHealthRouter(role authz.Role) chi.Router {
	handler := NewHandler(nil, authz.Middleware{Roles: staticRoleSource{role: role}}, discardLogger())
	r := chi.NewRouter()
	r.Route("/jobs", handler.MountRoutes)
	return r
}

func TestHealthRequiresSession(t *testing.T) {
	router := newHealthRouter(authz.AdministratorRole())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthRequiresDashboardView(t *testing.T) {
	router := newHealthRouter(authz.RoleFor("Coach", authz.Matrix{
		authz.ModuleAthletes: {authz.ActionView: true},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithUser("7", "/jobs/health"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthAllowsDashboardViewer(t *testing.T) {
	router := newHealthRouter(authz.RoleFor("Coordinator", authz.Matrix{
		authz.ModuleDashboard: {authz.ActionView: true},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithUser("7", "/jobs/health"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"queue"`)
}

func requestWithUser(userID, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess := &shared.Session{}
	sess.SetUser(userID)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}
