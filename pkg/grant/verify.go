// Package grant is the embeddable consumer side of the trial protocol:
// it decides whether a signed grant admits the holder, using the
// authority's public key obtained out of band.
package grant

import (
	"context"
	"errors"
	"time"

	"licentia/internal/domain"
	cryptoinfra "licentia/internal/infra/crypto"
	"licentia/internal/usecase"
)

// Verifier runs the verification pipeline: signature, then expiry, then
// the revocation gate. Token fields are untrusted input until the
// signature confirms authority origin, so nothing is parsed before the
// cryptographic check passes.
type Verifier struct {
	// PublicKey is the authority's 32-byte verification key. It must be
	// provisioned independently of any network call that could be
	// spoofed.
	PublicKey []byte

	// Checker reaches the authority's revocation status. Nil skips the
	// gate entirely (offline-only verification).
	Checker usecase.RevocationChecker

	// Stamp persists the last successful online check. Required for the
	// grace period to span process restarts.
	Stamp usecase.CheckStamp

	// Grace is the offline allowance measured from the last successful
	// check; zero disables it.
	Grace time.Duration

	// Timeout bounds the online revocation check.
	Timeout time.Duration

	// Events receives an access_denied event when the gate denies.
	// Optional.
	Events *usecase.EventEmitter

	Clock usecase.Clock
}

// Result reports an admit decision with the verified token and the
// detail a caller needs for an actionable message.
type Result struct {
	Token         domain.TrialToken
	DaysRemaining uint64
	Gate          domain.GateDecision
}

// Verify runs the full pipeline on a signed grant and returns a Result
// on admit. On deny the error unwraps to the matching domain sentinel.
func (v *Verifier) Verify(ctx context.Context, signed domain.SignedGrant) (Result, error) {
	if v == nil {
		return Result{}, errors.New("verifier is nil")
	}

	svc := cryptoinfra.NewService()
	if err := svc.Verify(signed.Token, signed.Signature, v.PublicKey); err != nil {
		return Result{}, err
	}

	token, err := cryptoinfra.Decode(signed.Token)
	if err != nil {
		return Result{}, err
	}

	now := v.now()
	daysRemaining, err := usecase.ValidateToken(token, now)
	if err != nil {
		return Result{}, err
	}

	result := Result{Token: token, DaysRemaining: daysRemaining}
	if v.Checker == nil {
		return result, nil
	}

	gate := usecase.NewRevocationGate(v.Checker, v.Stamp, v.Grace, v.Timeout, v.Clock)
	gate.Events = v.Events
	decision, err := gate.Check(ctx, token.SubjectID)
	result.Gate = decision
	if err != nil {
		return result, err
	}
	return result, nil
}

func (v *Verifier) now() time.Time {
	if v != nil && v.Clock != nil {
		return v.Clock()
	}
	return time.Now().UTC()
}
