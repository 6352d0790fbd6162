package memstore

import (
	"context"
	"sync"
	"time"

	"licentia/internal/domain"
	"licentia/internal/usecase"
)

// Store keeps revocation flags and issued grants in process memory
// behind one coarse lock. It backs the authority in no-db mode.
type Store struct {
	mu      sync.Mutex
	revoked map[string]bool
	grants  []domain.IssuedGrant
}

func New() *Store {
	return &Store{
		revoked: make(map[string]bool),
	}
}

func (s *Store) SetRevoked(ctx context.Context, subjectID string, revoked bool, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[subjectID] = revoked
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, subjectID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[subjectID], nil
}

func (s *Store) RecordIssued(ctx context.Context, grant domain.IssuedGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = time.Now().UTC()
	}
	s.grants = append(s.grants, grant)
	return nil
}

func (s *Store) ListBySubject(ctx context.Context, subjectID string) ([]domain.IssuedGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.IssuedGrant
	for _, grant := range s.grants {
		if grant.SubjectID == subjectID {
			out = append(out, grant)
		}
	}
	return out, nil
}

// IssuedGrants returns a snapshot of the issuance ledger.
func (s *Store) IssuedGrants() []domain.IssuedGrant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.IssuedGrant, len(s.grants))
	copy(out, s.grants)
	return out
}

var (
	_ usecase.RevocationStore = (*Store)(nil)
	_ usecase.GrantStore      = (*Store)(nil)
	_ usecase.GrantLister     = (*Store)(nil)
)
