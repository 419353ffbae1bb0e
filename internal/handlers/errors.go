package handlers

import (
	"errors"
	"net/http"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/obj8899/studio/internal/services"
	"github.com/obj8899/studio/pkg/dto"
	"github.com/rs/zerolog"
)

type errorClass struct {
	class  error
	status int
	code   string
}

var errorClasses = []errorClass{
	{services.ErrNotFound, http.StatusNotFound, "not_found"},
	{services.ErrValidation, http.StatusBadRequest, "validation_failed"},
	{services.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{services.ErrConflict, http.StatusConflict, "conflict"},
	{services.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
	{services.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

// classify maps a service error onto its HTTP status and error code.
func classify(err error) (int, string) {
	for _, ec := range errorClasses {
		if errors.Is(err, ec.class) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// respondError writes the error body for err. Unclassified errors are logged and their detail
// replaced with fallback.
func respondError(c *drift.Context, err error, fallback string) {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg(fallback)
		message = fallback
	} else if status == http.StatusServiceUnavailable {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg(fallback)
		message = fallback
	}

	_ = c.JSON(status, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: code, Message: message},
	})
}

func badRequest(c *drift.Context, message string) {
	_ = c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: "validation_failed", Message: message},
	})
}
