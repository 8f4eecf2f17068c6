package domain

import (
	"errors"
	"net/http"
)

// Error is an expected, client-facing failure. Handlers translate it
// into the {success:false, message, code} envelope with the carried
// HTTP status. Anything that is not a *domain.Error is treated as an
// internal fault and reported generically.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// AsError extracts a *domain.Error from err, unwrapping as needed.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func newError(status int, code, message string) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// Authentication outcomes. NO_TOKEN and INVALID_TOKEN are distinct on
// purpose: the client shows a login screen for the former and a
// re-authenticate prompt for the latter.
var (
	ErrNoToken        = newError(http.StatusUnauthorized, "NO_TOKEN", "please sign in to your little planet first")
	ErrInvalidToken   = newError(http.StatusUnauthorized, "INVALID_TOKEN", "your session has expired, please sign in again")
	ErrCoupleNotFound = newError(http.StatusNotFound, "COUPLE_NOT_FOUND", "couple code not found, check it or create a new planet")
)

// Validation outcomes.
var (
	ErrInvalidCoupleCode = newError(http.StatusBadRequest, "INVALID_COUPLE_CODE", "the couple code needs at least 4 characters")
	ErrCoupleCodeTooLong = newError(http.StatusBadRequest, "COUPLE_CODE_TOO_LONG", "the couple code cannot exceed 50 characters")
	ErrInvalidStartDate  = newError(http.StatusBadRequest, "INVALID_START_DATE", "please pick a valid start date")
	ErrFutureStartDate   = newError(http.StatusBadRequest, "FUTURE_START_DATE", "the start date cannot be in the future")
	ErrTooOldStartDate   = newError(http.StatusBadRequest, "TOO_OLD_START_DATE", "that date seems a little too far back")
	ErrEmptyTitle        = newError(http.StatusBadRequest, "EMPTY_TITLE", "please give your wish a title")
	ErrTitleTooLong      = newError(http.StatusBadRequest, "TITLE_TOO_LONG", "the wish title cannot exceed 200 characters")
	ErrDescTooLong       = newError(http.StatusBadRequest, "DESCRIPTION_TOO_LONG", "the wish description cannot exceed 1000 characters")
	ErrInvalidWishType   = newError(http.StatusBadRequest, "INVALID_WISH_TYPE", "invalid wish type")
	ErrInvalidTargetDate = newError(http.StatusBadRequest, "INVALID_TARGET_DATE", "please pick a valid target date")
	ErrPastTargetDate    = newError(http.StatusBadRequest, "PAST_TARGET_DATE", "the target date cannot be in the past, pick a day to look forward to")
	ErrInvalidWishID     = newError(http.StatusBadRequest, "INVALID_WISH_ID", "invalid wish id")
	ErrNoUpdateFields    = newError(http.StatusBadRequest, "NO_UPDATE_FIELDS", "no fields to update were provided")
)

// Conflict and not-found outcomes. WISH_NOT_FOUND deliberately covers
// both "no such row" and "owned by someone else" so that wish ids
// cannot be enumerated across couples.
var (
	ErrCoupleCodeExists = newError(http.StatusConflict, "COUPLE_CODE_EXISTS", "that couple code is already taken, try another one")
	ErrDuplicateWish    = newError(http.StatusConflict, "DUPLICATE_WISH", "you two already share that wish, go take a look")
	ErrWishNotFound     = newError(http.StatusNotFound, "WISH_NOT_FOUND", "that wish does not exist or is not yours")
)

// Infrastructure outcomes.
var (
	ErrServiceUnavailable = newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "the planet is busy right now, please retry shortly")
)

// ValidationError builds a request-specific VALIDATION_ERROR outcome.
func ValidationError(message string) *Error {
	return newError(http.StatusBadRequest, "VALIDATION_ERROR", message)
}
