package usecase

import (
	"context"
	"errors"
	"time"

	"licentia/internal/domain"
)

// RevocationGate reconciles online revocation checks with a bounded
// offline grace period. Only a successful online check resets the
// grace window, and a confirmed revocation always overrides it.
type RevocationGate struct {
	Checker RevocationChecker
	Stamp   CheckStamp
	Grace   time.Duration
	Timeout time.Duration
	Clock   Clock

	// Events receives an access_denied event for every deny branch.
	// Optional; emission never alters the decision.
	Events *EventEmitter
}

func NewRevocationGate(checker RevocationChecker, stamp CheckStamp, grace, timeout time.Duration, clock Clock) *RevocationGate {
	return &RevocationGate{
		Checker: checker,
		Stamp:   stamp,
		Grace:   grace,
		Timeout: timeout,
		Clock:   clock,
	}
}

// Check runs one gate transition for subjectID. The online check is
// bounded by the configured timeout; a timeout, network error, or
// malformed response all take the unreachable branch. Deny decisions
// come back with the matching domain error.
func (g *RevocationGate) Check(ctx context.Context, subjectID string) (domain.GateDecision, error) {
	if g == nil || g.Checker == nil {
		return domain.GateDecision{}, errors.New("revocation checker is required")
	}

	checkCtx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	now := g.now()
	revoked, err := g.Checker.CheckRevocation(checkCtx, subjectID)
	if err == nil {
		if revoked {
			_ = g.Events.EmitDenied(ctx, subjectID, "revoked", nil)
			return domain.GateDecision{State: domain.GateRevoked}, domain.ErrRevoked
		}
		if g.Stamp != nil {
			// Best effort: a failed stamp write must not turn a
			// successful online check into a denial.
			_ = g.Stamp.StoreLastCheck(now)
		}
		return domain.GateDecision{State: domain.GateOnlineVerified, Admit: true}, nil
	}

	return g.offline(ctx, subjectID, now)
}

func (g *RevocationGate) offline(ctx context.Context, subjectID string, now time.Time) (domain.GateDecision, error) {
	if g.Stamp == nil {
		_ = g.Events.EmitDenied(ctx, subjectID, "never_verified", nil)
		return domain.GateDecision{State: domain.GateUnreachable}, domain.ErrNeverVerified
	}
	last, ok, err := g.Stamp.LoadLastCheck()
	if err != nil || !ok {
		_ = g.Events.EmitDenied(ctx, subjectID, "never_verified", nil)
		return domain.GateDecision{State: domain.GateUnreachable}, domain.ErrNeverVerified
	}

	elapsed := now.Sub(last)
	if g.Grace > 0 && elapsed <= g.Grace {
		return domain.GateDecision{
			State:          domain.GateGracePeriodActive,
			Admit:          true,
			HoursRemaining: uint64((g.Grace - elapsed) / time.Hour),
		}, nil
	}

	hoursSince := uint64(0)
	if elapsed > 0 {
		hoursSince = uint64(elapsed / time.Hour)
	}
	_ = g.Events.EmitDenied(ctx, subjectID, "grace_period_expired", map[string]any{
		"hours_since_check": hoursSince,
	})
	return domain.GateDecision{
		State:           domain.GateGracePeriodExpired,
		HoursSinceCheck: hoursSince,
	}, &domain.GraceExpiredError{HoursSinceCheck: hoursSince}
}

func (g *RevocationGate) now() time.Time {
	if g != nil && g.Clock != nil {
		return g.Clock()
	}
	return time.Now().UTC()
}
