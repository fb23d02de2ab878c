// Package api implements the HTTP boundary: request decoding, validation,
// and mapping of service results and errors to transport responses.
package api

import (
	"errors"
	"net/http"

	"github.com/ntokozodev/user-tasks-api/internal/api/shared"
	"github.com/ntokozodev/user-tasks-api/internal/domain"
	"github.com/ntokozodev/user-tasks-api/internal/service"
)

// HandleServiceError maps a service-layer error to an HTTP response.
// Sentinel errors map to client status codes; anything unrecognized is an
// internal failure and surfaces as a generic 500.
//
// Mapping:
//   - ErrUserNotFound, ErrTaskNotFound  -> 404
//   - ErrTaskNotOwned                   -> 403
//   - domain.ErrValidation (bad date-time, bad page args, entity validation) -> 422
//   - ErrEmailExists                    -> 409
//   - ErrInvalidCredentials             -> 401
//   - everything else                   -> 500
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "User not found", err)
	case errors.Is(err, service.ErrTaskNotFound):
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "Task not found", err)
	case errors.Is(err, service.ErrTaskNotOwned):
		shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Task belongs to another user", err)
	case errors.Is(err, domain.ErrValidation), isEntityValidationError(err):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, service.ErrEmailExists):
		shared.RespondWithErrorAndLog(w, r, http.StatusConflict, "Email is already registered", err)
	case errors.Is(err, service.ErrInvalidCredentials):
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid email or password", err)
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, fallbackMessage, err)
	}
}

// isEntityValidationError matches the per-field domain validation sentinels
// that do not wrap domain.ErrValidation.
func isEntityValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyTaskName,
		domain.ErrEmptyTaskOwner,
		domain.ErrInvalidTaskStatus,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
