package db

import (
	"context"

	"licentia/internal/domain"
	"licentia/internal/usecase"

	"gorm.io/gorm"
)

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) RecordIssued(ctx context.Context, grant domain.IssuedGrant) error {
	if r == nil || r.db == nil {
		return errStoreUnavailable()
	}
	if grant.SubjectID == "" {
		return errEmptySubject
	}
	id := grant.ID
	if id == "" {
		generated, err := newUUID()
		if err != nil {
			return err
		}
		id = generated
	}
	model := GrantModel{
		ID:        id,
		SubjectID: grant.SubjectID,
		IssuedAt:  grant.IssuedAt,
		ExpiresAt: grant.ExpiresAt,
		Signature: grant.Signature,
		CreatedAt: grant.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *GrantRepository) ListBySubject(ctx context.Context, subjectID string) ([]domain.IssuedGrant, error) {
	if r == nil || r.db == nil {
		return nil, errStoreUnavailable()
	}
	var models []GrantModel
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("issued_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.IssuedGrant, 0, len(models))
	for _, m := range models {
		out = append(out, domain.IssuedGrant{
			ID:        m.ID,
			SubjectID: m.SubjectID,
			IssuedAt:  m.IssuedAt,
			ExpiresAt: m.ExpiresAt,
			Signature: m.Signature,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

var (
	_ usecase.GrantStore  = (*GrantRepository)(nil)
	_ usecase.GrantLister = (*GrantRepository)(nil)
)
