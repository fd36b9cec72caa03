package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/portal"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Empty extraction carries the months it compared
	var emptyErr *attendance.EmptyResultError
	if errors.As(err, &emptyErr) {
		NotFound(w, emptyResultMessage(emptyErr.Err), emptyErr.Details())
		return
	}

	// Portal rejections carry the portal's own message
	var rejectedErr *portal.RejectedError
	if errors.As(err, &rejectedErr) {
		Unauthorized(w, rejectedErr.Error())
		return
	}

	switch {
	// Portal errors
	case errors.Is(err, portal.ErrMissingCredentials):
		BadRequest(w, "Organization ID, username and password are required", nil)
	case errors.Is(err, portal.ErrLoginFailed):
		Unauthorized(w, "Login to the attendance portal failed")
	case errors.Is(err, portal.ErrNoCookies):
		BadGateway(w, "The attendance portal did not return a session")
	case errors.Is(err, portal.ErrCalendarFetchFailed):
		BadGateway(w, "Failed to fetch the attendance calendar")
	case errors.Is(err, portal.ErrPortalUnreachable):
		ServiceUnavailable(w, "The attendance portal is unreachable")

	// Session errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Session not found", nil)
	case errors.Is(err, attendance.ErrSessionExpired):
		Unauthorized(w, "Session expired")
	case errors.Is(err, jwtauth.ErrUnauthorized),
		errors.Is(err, jwtauth.ErrExpired),
		errors.Is(err, jwtauth.ErrNoTokenFound):
		Unauthorized(w, err.Error())

	// Classification errors
	case errors.Is(err, attendance.ErrDateOutsideMonth):
		BadRequest(w, "Date is not part of the session month", nil)
	case errors.Is(err, attendance.ErrWeekendReclassification):
		BadRequest(w, "Weekend days cannot be reclassified", nil)
	case errors.Is(err, attendance.ErrUnsupportedExportFormat):
		BadRequest(w, "Unsupported export format", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func emptyResultMessage(err error) string {
	switch {
	case errors.Is(err, attendance.ErrFutureMonth):
		return "The calendar shows a future month, no data is available yet"
	case errors.Is(err, attendance.ErrPastMonth):
		return "The calendar shows a past month without entries"
	default:
		return "No time entries were found in the calendar"
	}
}
