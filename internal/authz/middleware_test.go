package authz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clubdesk/clubdesk/internal/shared"
)

type staticRoleSource struct {
	role Role
	err  error
}

func (s staticRoleSource) RoleForUser(context.Context, int64) (Role, error) {
	return s.role, s.err
}

func requestWithUser(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/athletes", nil)
	if userID == "" {
		return req
	}
	sess := &shared.Session{}
	sess.SetUser(userID)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireDeniesWithoutSession(t *testing.T) {
	mw := Middleware{Roles: staticRoleSource{role: AdministratorRole()}}
	handler := mw.Require(ModuleAthletes, ActionView)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser(""))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAllowsGrantedAction(t *testing.T) {
	matrix := Matrix{ModuleAthletes: {ActionView: true}}
	mw := Middleware{Roles: staticRoleSource{role: RoleFor("Coach", matrix)}}
	handler := mw.Require(ModuleAthletes, ActionView)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser("7"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireDeniesMissingGrant(t *testing.T) {
	matrix := Matrix{ModuleAthletes: {ActionView: true}}
	mw := Middleware{Roles: staticRoleSource{role: RoleFor("Coach", matrix)}}
	handler := mw.Require(ModuleAthletes, ActionDelete)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser("7"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireFailsClosedOnResolutionError(t *testing.T) {
	mw := Middleware{Roles: staticRoleSource{err: errors.New("db down")}}
	handler := mw.Require(ModuleAthletes, ActionView)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser("7"))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdministratorWildcard(t *testing.T) {
	mw := Middleware{Roles: staticRoleSource{role: AdministratorRole()}}
	handler := mw.Require(ModulePurchases, ActionDelete)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithUser("1"))
	require.Equal(t, http.StatusOK, rec.Code)
}
