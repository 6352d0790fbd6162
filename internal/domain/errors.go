package domain

import (
	"errors"
	"fmt"
)

var (
	ErrArtifactMissing      = errors.New("grant artifact missing")
	ErrFormatInvalid        = errors.New("grant format invalid")
	ErrPublicKeyInvalid     = errors.New("public key invalid")
	ErrSignatureInvalid     = errors.New("signature verification failed")
	ErrExpired              = errors.New("trial expired")
	ErrRevoked              = errors.New("trial revoked")
	ErrGraceExpired         = errors.New("offline grace period expired")
	ErrNeverVerified        = errors.New("no successful online check on record")
	ErrAuthorityUnavailable = errors.New("authority unavailable")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
)

// ExpiredError reports how long ago a token expired, in whole days.
type ExpiredError struct {
	DaysOverdue uint64
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("trial expired %d days ago", e.DaysOverdue)
}

func (e *ExpiredError) Unwrap() error { return ErrExpired }

// GraceExpiredError reports how many whole hours have elapsed since the
// last successful online check.
type GraceExpiredError struct {
	HoursSinceCheck uint64
}

func (e *GraceExpiredError) Error() string {
	return fmt.Sprintf("offline grace period expired: last online check was %d hours ago", e.HoursSinceCheck)
}

func (e *GraceExpiredError) Unwrap() error { return ErrGraceExpired }
