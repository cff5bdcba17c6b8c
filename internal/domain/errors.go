package domain

import "errors"

// Validation errors
var (
	ErrHandleRequired       = errors.New("username is required")
	ErrInvalidHandle        = errors.New("invalid username format")
	ErrInvalidPlatform      = errors.New("invalid platform")
	ErrNegativeFollowers    = errors.New("followers must not be negative")
	ErrContributionTooShort = errors.New("contribution is too short")
)

// Lookup errors
var (
	ErrLookupFailed    = errors.New("profile lookup failed")
	ErrProfileNotFound = errors.New("profile not found")
)

// Session and claim errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNothingToClaim  = errors.New("no eligible card to claim")
	ErrStaleCheck      = errors.New("eligibility check superseded by a newer one")
	ErrSessionConflict = errors.New("session update conflict")
)
