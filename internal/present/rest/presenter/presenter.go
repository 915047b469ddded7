package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jawafdehi/jawaf/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Created wraps a successful creation.
func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "bad_request"})
}

// Error maps domain errors onto distinct status codes and machine-readable
// codes, so callers can render each failure mode differently.
func Error(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error(), Code: "forbidden"})
	case errors.Is(err, domain.ErrConcurrency):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "version_conflict"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "invalid_transition"})
	case errors.Is(err, domain.ErrIncompletePrecondition):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "incomplete_precondition"})
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "validation_failed"})
	case errors.Is(err, domain.ErrImport):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "import_failed"})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error(), Code: "internal"})
}
