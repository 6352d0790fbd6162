package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"licentia/internal/domain"
)

type fakeChecker struct {
	revoked bool
	err     error
	ctxErr  bool
}

func (f *fakeChecker) CheckRevocation(ctx context.Context, subjectID string) (bool, error) {
	if f.ctxErr {
		<-ctx.Done()
		return false, ctx.Err()
	}
	if f.err != nil {
		return false, f.err
	}
	return f.revoked, nil
}

type fakeStamp struct {
	last     time.Time
	hasLast  bool
	stored   []time.Time
	loadErr  error
	storeErr error
}

func (f *fakeStamp) LoadLastCheck() (time.Time, bool, error) {
	return f.last, f.hasLast, f.loadErr
}

func (f *fakeStamp) StoreLastCheck(t time.Time) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = append(f.stored, t)
	f.last = t
	f.hasLast = true
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestGateOnlineVerifiedRecordsStamp(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	stamp := &fakeStamp{}
	gate := NewRevocationGate(&fakeChecker{}, stamp, 24*time.Hour, time.Second, fixedClock(now))

	decision, err := gate.Check(context.Background(), "alice")
	if err != nil {
		t.Fatalf("expected admit, got %v", err)
	}
	if decision.State != domain.GateOnlineVerified || !decision.Admit {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if len(stamp.stored) != 1 || !stamp.stored[0].Equal(now) {
		t.Fatalf("expected stamp stored at %v, got %v", now, stamp.stored)
	}
}

func TestGateRevokedOverridesGracePeriod(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	// A fresh stamp would allow the full grace window, but a reachable
	// authority that says revoked must win.
	stamp := &fakeStamp{last: now.Add(-time.Minute), hasLast: true}
	gate := NewRevocationGate(&fakeChecker{revoked: true}, stamp, 24*time.Hour, time.Second, fixedClock(now))

	decision, err := gate.Check(context.Background(), "bob")
	if !errors.Is(err, domain.ErrRevoked) {
		t.Fatalf("expected revoked, got %v", err)
	}
	if decision.State != domain.GateRevoked || decision.Admit {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if len(stamp.stored) != 0 {
		t.Fatal("revoked check must not refresh the stamp")
	}
}

func TestGateUnreachableWithoutPriorCheck(t *testing.T) {
	gate := NewRevocationGate(&fakeChecker{err: errors.New("connection refused")}, &fakeStamp{}, 24*time.Hour, time.Second, nil)

	decision, err := gate.Check(context.Background(), "carol")
	if !errors.Is(err, domain.ErrNeverVerified) {
		t.Fatalf("expected never-verified denial, got %v", err)
	}
	if decision.State != domain.GateUnreachable || decision.Admit {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestGateGracePeriodTransitions(t *testing.T) {
	lastCheck := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	checker := &fakeChecker{err: errors.New("connection refused")}
	grace := 24 * time.Hour

	cases := []struct {
		name           string
		now            time.Time
		admit          bool
		state          domain.GateState
		hoursRemaining uint64
		hoursSince     uint64
	}{
		{"well inside window", lastCheck.Add(20 * time.Hour), true, domain.GateGracePeriodActive, 4, 0},
		{"exactly at boundary", lastCheck.Add(24 * time.Hour), true, domain.GateGracePeriodActive, 0, 0},
		{"just past boundary", lastCheck.Add(24*time.Hour + time.Second), false, domain.GateGracePeriodExpired, 0, 24},
		{"well past window", lastCheck.Add(30 * time.Hour), false, domain.GateGracePeriodExpired, 0, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stamp := &fakeStamp{last: lastCheck, hasLast: true}
			gate := NewRevocationGate(checker, stamp, grace, time.Second, fixedClock(tc.now))

			decision, err := gate.Check(context.Background(), "carol")
			if decision.State != tc.state || decision.Admit != tc.admit {
				t.Fatalf("unexpected decision: %+v", decision)
			}
			if tc.admit {
				if err != nil {
					t.Fatalf("expected admit, got %v", err)
				}
				if decision.HoursRemaining != tc.hoursRemaining {
					t.Fatalf("expected %d hours remaining, got %d", tc.hoursRemaining, decision.HoursRemaining)
				}
				return
			}
			var graceErr *domain.GraceExpiredError
			if !errors.As(err, &graceErr) {
				t.Fatalf("expected GraceExpiredError, got %v", err)
			}
			if graceErr.HoursSinceCheck != tc.hoursSince {
				t.Fatalf("expected %d hours since check, got %d", tc.hoursSince, graceErr.HoursSinceCheck)
			}
		})
	}
}

func TestGateZeroGraceDisablesOfflineAllowance(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	stamp := &fakeStamp{last: now.Add(-time.Minute), hasLast: true}
	gate := NewRevocationGate(&fakeChecker{err: errors.New("connection refused")}, stamp, 0, time.Second, fixedClock(now))

	decision, err := gate.Check(context.Background(), "dave")
	if !errors.Is(err, domain.ErrGraceExpired) {
		t.Fatalf("expected grace-expired denial, got %v", err)
	}
	if decision.State != domain.GateGracePeriodExpired || decision.Admit {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestGateTimeoutRoutesToUnreachable(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	stamp := &fakeStamp{last: now.Add(-20 * time.Hour), hasLast: true}
	gate := NewRevocationGate(&fakeChecker{ctxErr: true}, stamp, 24*time.Hour, 10*time.Millisecond, fixedClock(now))

	decision, err := gate.Check(context.Background(), "erin")
	if err != nil {
		t.Fatalf("expected grace admit after timeout, got %v", err)
	}
	if decision.State != domain.GateGracePeriodActive || !decision.Admit {
		t.Fatalf("timeout must fall through to the grace path, got %+v", decision)
	}
	if decision.HoursRemaining != 4 {
		t.Fatalf("expected 4 hours remaining, got %d", decision.HoursRemaining)
	}
}

func TestGateStampWriteFailureStillAdmitsOnline(t *testing.T) {
	stamp := &fakeStamp{storeErr: errors.New("disk full")}
	gate := NewRevocationGate(&fakeChecker{}, stamp, 24*time.Hour, time.Second, nil)

	decision, err := gate.Check(context.Background(), "frank")
	if err != nil {
		t.Fatalf("expected admit, got %v", err)
	}
	if decision.State != domain.GateOnlineVerified {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestGateScenarioOfflineLifecycle(t *testing.T) {
	// Successful check at t0, authority goes dark: admit at t0+20h with
	// 4 hours remaining, deny at t0+30h with 30 hours since check.
	t0 := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	stamp := &fakeStamp{}
	online := NewRevocationGate(&fakeChecker{}, stamp, 24*time.Hour, time.Second, fixedClock(t0))
	if _, err := online.Check(context.Background(), "carol"); err != nil {
		t.Fatalf("online check: %v", err)
	}

	dark := &fakeChecker{err: errors.New("no route to host")}
	gate := NewRevocationGate(dark, stamp, 24*time.Hour, time.Second, fixedClock(t0.Add(20*time.Hour)))
	decision, err := gate.Check(context.Background(), "carol")
	if err != nil || decision.State != domain.GateGracePeriodActive || decision.HoursRemaining != 4 {
		t.Fatalf("t0+20h: unexpected outcome %+v %v", decision, err)
	}

	gate = NewRevocationGate(dark, stamp, 24*time.Hour, time.Second, fixedClock(t0.Add(30*time.Hour)))
	decision, err = gate.Check(context.Background(), "carol")
	if decision.State != domain.GateGracePeriodExpired {
		t.Fatalf("t0+30h: unexpected decision %+v", decision)
	}
	var graceErr *domain.GraceExpiredError
	if !errors.As(err, &graceErr) || graceErr.HoursSinceCheck != 30 {
		t.Fatalf("t0+30h: unexpected error %v", err)
	}
}

type memSink struct {
	events []domain.Event
}

func (m *memSink) Emit(ctx context.Context, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

func TestGateDenialsEmitEvents(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	newGate := func(checker *fakeChecker, stamp *fakeStamp) (*RevocationGate, *memSink) {
		sink := &memSink{}
		gate := NewRevocationGate(checker, stamp, 24*time.Hour, time.Second, fixedClock(now))
		gate.Events = NewEventEmitter(sink, fixedClock(now))
		return gate, sink
	}

	gate, sink := newGate(&fakeChecker{revoked: true}, &fakeStamp{})
	if _, err := gate.Check(context.Background(), "bob"); !errors.Is(err, domain.ErrRevoked) {
		t.Fatalf("expected ErrRevoked, got %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("revoked deny: expected one event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Type != domain.EventAccessDenied || ev.SubjectID != "bob" || ev.Detail["reason"] != "revoked" {
		t.Fatalf("unexpected event %+v", ev)
	}

	gate, sink = newGate(&fakeChecker{err: errors.New("dial tcp: connection refused")}, &fakeStamp{})
	if _, err := gate.Check(context.Background(), "carol"); !errors.Is(err, domain.ErrNeverVerified) {
		t.Fatalf("expected ErrNeverVerified, got %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].Detail["reason"] != "never_verified" {
		t.Fatalf("never-verified deny: unexpected events %+v", sink.events)
	}

	stamp := &fakeStamp{last: now.Add(-30 * time.Hour), hasLast: true}
	gate, sink = newGate(&fakeChecker{err: errors.New("dial tcp: connection refused")}, stamp)
	if _, err := gate.Check(context.Background(), "carol"); !errors.Is(err, domain.ErrGraceExpired) {
		t.Fatalf("expected ErrGraceExpired, got %v", err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("grace-expired deny: expected one event, got %d", len(sink.events))
	}
	ev = sink.events[0]
	if ev.Detail["reason"] != "grace_period_expired" || ev.Detail["hours_since_check"] != uint64(30) {
		t.Fatalf("unexpected event detail %+v", ev.Detail)
	}
}

func TestGateAdmitsEmitNothing(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	sink := &memSink{}

	gate := NewRevocationGate(&fakeChecker{}, &fakeStamp{}, 24*time.Hour, time.Second, fixedClock(now))
	gate.Events = NewEventEmitter(sink, fixedClock(now))
	if _, err := gate.Check(context.Background(), "alice"); err != nil {
		t.Fatalf("online admit: %v", err)
	}

	stamp := &fakeStamp{last: now.Add(-20 * time.Hour), hasLast: true}
	gate = NewRevocationGate(&fakeChecker{err: errors.New("down")}, stamp, 24*time.Hour, time.Second, fixedClock(now))
	gate.Events = NewEventEmitter(sink, fixedClock(now))
	if _, err := gate.Check(context.Background(), "alice"); err != nil {
		t.Fatalf("grace admit: %v", err)
	}

	if len(sink.events) != 0 {
		t.Fatalf("admit paths emitted %d events", len(sink.events))
	}
}
