// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the service layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrReserved guards records the API never mutates, such as the
	// Administrator role.
	ErrReserved = errors.New("reserved record cannot be modified")
	// ErrActiveRecord blocks deletion of records whose status is Active.
	ErrActiveRecord = errors.New("active records cannot be deleted")
)

// RespondError maps service errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrReserved):
		Problem(w, http.StatusConflict, "Reserved", err.Error())
	case errors.Is(err, ErrActiveRecord):
		Problem(w, http.StatusConflict, "Active Record", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// ValidationProblem reports per-field validation errors.
func ValidationProblem(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, struct {
		Title  string            `json:"title"`
		Status int               `json:"status"`
		Fields map[string]string `json:"fields"`
	}{Title: "Validation Failed", Status: http.StatusBadRequest, Fields: fields})
}
