package db

import "time"

type RevocationModel struct {
	SubjectID string `gorm:"primaryKey"`
	Revoked   bool   `gorm:"not null"`
	Reason    string
	RevokedAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (RevocationModel) TableName() string {
	return "revocations"
}

type GrantModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	SubjectID string    `gorm:"index;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Signature []byte    `gorm:"type:bytea;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (GrantModel) TableName() string {
	return "grants"
}

type EventModel struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	EventType  string    `gorm:"index;not null"`
	SubjectID  string    `gorm:"index"`
	DetailJSON []byte    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (EventModel) TableName() string {
	return "events"
}
