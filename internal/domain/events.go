package domain

import "time"

type EventType string

const (
	EventTrialIssued    EventType = "trial_issued"
	EventTrialRevoked   EventType = "trial_revoked"
	EventTrialUnrevoked EventType = "trial_unrevoked"
	EventAccessDenied   EventType = "access_denied"
)

// Event is a structured observability record emitted by the authority,
// decoupled from the decision logic that produced it.
type Event struct {
	ID        string
	Type      EventType
	SubjectID string
	Detail    map[string]any
	CreatedAt time.Time
}
