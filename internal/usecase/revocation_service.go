package usecase

import (
	"context"
	"errors"
	"fmt"

	"licentia/internal/domain"
)

// RevocationService owns the per-subject revocation flag. Revoke and
// Unrevoke are idempotent; a store failure surfaces as authority
// unavailability, never as "not revoked".
type RevocationService struct {
	Revocations RevocationStore
	Events      *EventEmitter
}

func NewRevocationService(revocations RevocationStore, events *EventEmitter) *RevocationService {
	return &RevocationService{
		Revocations: revocations,
		Events:      events,
	}
}

func (s *RevocationService) Revoke(ctx context.Context, subjectID, reason string) error {
	if err := s.check(subjectID); err != nil {
		return err
	}
	if err := s.Revocations.SetRevoked(ctx, subjectID, true, reason); err != nil {
		return err
	}
	_ = s.Events.EmitRevoked(ctx, subjectID, reason)
	return nil
}

func (s *RevocationService) Unrevoke(ctx context.Context, subjectID string) error {
	if err := s.check(subjectID); err != nil {
		return err
	}
	if err := s.Revocations.SetRevoked(ctx, subjectID, false, ""); err != nil {
		return err
	}
	_ = s.Events.EmitUnrevoked(ctx, subjectID)
	return nil
}

func (s *RevocationService) IsRevoked(ctx context.Context, subjectID string) (bool, error) {
	if err := s.check(subjectID); err != nil {
		return false, err
	}
	return s.Revocations.IsRevoked(ctx, subjectID)
}

func (s *RevocationService) check(subjectID string) error {
	if s == nil || s.Revocations == nil {
		return errors.New("revocation store is required")
	}
	if subjectID == "" {
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidRequest)
	}
	return nil
}
