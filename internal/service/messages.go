package service

import (
	"errors"

	"community_cards/internal/domain"
)

// User-facing messages shown by the front-end.
const (
	MsgCheckFirst     = "Please check your eligibility first."
	MsgLookupFailed   = "Could not find Twitter user. Please check the username."
	MsgStaleCheck     = "A newer eligibility check replaced this one."
	MsgSessionExpired = "Your session has expired. Please start again."
	MsgRetry          = "Your session was busy. Please try again."
	MsgInvalidRequest = "Invalid request. Please check your inputs."
	MsgServerError    = "Something went wrong"
)

// UserMessage turns a service error into the message shown to the visitor.
func UserMessage(err error) string {
	var formErr *FormError
	switch {
	case errors.As(err, &formErr):
		return MsgInvalidRequest
	case errors.Is(err, domain.ErrHandleRequired), errors.Is(err, domain.ErrInvalidHandle):
		return err.Error()
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrLookupFailed):
		return MsgLookupFailed
	case errors.Is(err, domain.ErrNothingToClaim):
		return MsgCheckFirst
	case errors.Is(err, domain.ErrStaleCheck):
		return MsgStaleCheck
	case errors.Is(err, domain.ErrSessionNotFound):
		return MsgSessionExpired
	case errors.Is(err, domain.ErrSessionConflict):
		return MsgRetry
	default:
		return MsgServerError
	}
}
