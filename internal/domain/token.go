package domain

import "time"

// TrialToken is the payload the authority signs. Timestamps are seconds
// since the Unix epoch. A token is immutable once issued; re-issuance
// produces a new token rather than altering a prior one.
type TrialToken struct {
	SubjectID string `json:"subject_id"`
	IssuedAt  uint64 `json:"issued_at"`
	ExpiresAt uint64 `json:"expires_at"`
}

// SignedGrant pairs the canonical token encoding with a detached
// ed25519 signature over those exact bytes.
type SignedGrant struct {
	Token     []byte
	Signature []byte
}

// IssuedGrant is the authority-side record of an issuance.
type IssuedGrant struct {
	ID        string
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Signature []byte
	CreatedAt time.Time
}

// Revocation is the authority-side flag for a subject. Absence of a
// record means not revoked.
type Revocation struct {
	SubjectID string
	Revoked   bool
	Reason    string
	RevokedAt time.Time
	CreatedAt time.Time
}
