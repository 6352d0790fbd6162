package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"licentia/internal/domain"
	"licentia/internal/infra/crypto"
)

// IssueService builds, signs, and records trial grants. Issuance always
// succeeds for a non-empty subject; repeated calls produce independent
// later-expiring grants.
type IssueService struct {
	Signer   Signer
	Grants   GrantStore
	Events   *EventEmitter
	Clock    Clock
	Duration time.Duration
}

func NewIssueService(signer Signer, grants GrantStore, events *EventEmitter, clock Clock, duration time.Duration) *IssueService {
	return &IssueService{
		Signer:   signer,
		Grants:   grants,
		Events:   events,
		Clock:    clock,
		Duration: duration,
	}
}

func (s *IssueService) Issue(ctx context.Context, subjectID string) (domain.SignedGrant, domain.TrialToken, error) {
	if s == nil || s.Signer == nil {
		return domain.SignedGrant{}, domain.TrialToken{}, errors.New("signer is required")
	}
	if subjectID == "" {
		return domain.SignedGrant{}, domain.TrialToken{}, fmt.Errorf("%w: subject is required", domain.ErrInvalidRequest)
	}

	now := s.now()
	token := domain.TrialToken{
		SubjectID: subjectID,
		IssuedAt:  uint64(now.Unix()),
		ExpiresAt: uint64(now.Add(s.Duration).Unix()),
	}
	encoded := crypto.Encode(token)
	sig := s.Signer.Sign(encoded)
	grant := domain.SignedGrant{Token: encoded, Signature: sig}

	if s.Grants != nil {
		record := domain.IssuedGrant{
			SubjectID: subjectID,
			IssuedAt:  time.Unix(int64(token.IssuedAt), 0).UTC(),
			ExpiresAt: time.Unix(int64(token.ExpiresAt), 0).UTC(),
			Signature: sig,
			CreatedAt: now.UTC(),
		}
		if err := s.Grants.RecordIssued(ctx, record); err != nil {
			return domain.SignedGrant{}, domain.TrialToken{}, err
		}
	}
	_ = s.Events.EmitIssued(ctx, subjectID, time.Unix(int64(token.ExpiresAt), 0))
	return grant, token, nil
}

func (s *IssueService) now() time.Time {
	if s != nil && s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}
