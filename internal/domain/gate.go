package domain

type GateState string

const (
	GateOnlineVerified     GateState = "online_verified"
	GateGracePeriodActive  GateState = "grace_period_active"
	GateGracePeriodExpired GateState = "grace_period_expired"
	GateRevoked            GateState = "revoked"
	GateUnreachable        GateState = "unreachable"
)

// GateDecision is the outcome of a revocation gate check. HoursRemaining
// is set for GateGracePeriodActive; HoursSinceCheck for
// GateGracePeriodExpired.
type GateDecision struct {
	State           GateState
	Admit           bool
	HoursRemaining  uint64
	HoursSinceCheck uint64
}
