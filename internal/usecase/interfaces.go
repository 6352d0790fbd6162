package usecase

import (
	"context"
	"time"

	"licentia/internal/domain"
)

type Clock func() time.Time

// Signer is the authority's signing capability. Implementations never
// expose the private half of the keypair.
type Signer interface {
	Sign(payload []byte) []byte
	PublicKey() []byte
}

type RevocationStore interface {
	SetRevoked(ctx context.Context, subjectID string, revoked bool, reason string) error
	IsRevoked(ctx context.Context, subjectID string) (bool, error)
}

type GrantStore interface {
	RecordIssued(ctx context.Context, grant domain.IssuedGrant) error
}

// GrantLister reads back the issuance ledger for one subject.
type GrantLister interface {
	ListBySubject(ctx context.Context, subjectID string) ([]domain.IssuedGrant, error)
}

type EventSink interface {
	Emit(ctx context.Context, event domain.Event) error
}

// RevocationChecker is the consumer-side view of the authority's
// revocation status, reached over some transport.
type RevocationChecker interface {
	CheckRevocation(ctx context.Context, subjectID string) (bool, error)
}

// CheckStamp persists the timestamp of the last successful online check.
type CheckStamp interface {
	LoadLastCheck() (time.Time, bool, error)
	StoreLastCheck(t time.Time) error
}
