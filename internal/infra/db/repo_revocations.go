package db

import (
	"context"
	"errors"
	"time"

	"licentia/internal/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevocationRepository struct {
	db *gorm.DB
}

func NewRevocationRepository(db *gorm.DB) *RevocationRepository {
	return &RevocationRepository{db: db}
}

func (r *RevocationRepository) SetRevoked(ctx context.Context, subjectID string, revoked bool, reason string) error {
	if r == nil || r.db == nil {
		return errStoreUnavailable()
	}
	if subjectID == "" {
		return errEmptySubject
	}
	now := time.Now().UTC()
	model := RevocationModel{
		SubjectID: subjectID,
		Revoked:   revoked,
		Reason:    reason,
		RevokedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"revoked", "reason", "revoked_at", "updated_at"}),
		}).
		Create(&model).Error
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, subjectID string) (bool, error) {
	if r == nil || r.db == nil {
		return false, errStoreUnavailable()
	}
	var model RevocationModel
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return model.Revoked, nil
}

var _ usecase.RevocationStore = (*RevocationRepository)(nil)
