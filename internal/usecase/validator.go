package usecase

import (
	"time"

	"licentia/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// ValidateToken enforces the expiry invariant against now and returns
// the whole days remaining. It must only be called on a token whose
// signature has already been verified; it does not consult revocation.
func ValidateToken(token domain.TrialToken, now time.Time) (uint64, error) {
	ts := uint64(now.Unix())
	if ts > token.ExpiresAt {
		return 0, &domain.ExpiredError{
			DaysOverdue: (ts - token.ExpiresAt) / secondsPerDay,
		}
	}
	return (token.ExpiresAt - ts) / secondsPerDay, nil
}
