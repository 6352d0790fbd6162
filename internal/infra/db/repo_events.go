package db

import (
	"context"
	"encoding/json"

	"licentia/internal/domain"
	"licentia/internal/usecase"

	"gorm.io/gorm"
)

// EventRepository is the gorm-backed event sink.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Emit(ctx context.Context, event domain.Event) error {
	if r == nil || r.db == nil {
		return errStoreUnavailable()
	}
	id := event.ID
	if id == "" {
		generated, err := newUUID()
		if err != nil {
			return err
		}
		id = generated
	}
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return err
	}
	model := EventModel{
		ID:         id,
		EventType:  string(event.Type),
		SubjectID:  event.SubjectID,
		DetailJSON: detail,
		CreatedAt:  event.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

var _ usecase.EventSink = (*EventRepository)(nil)
