package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeTarget scripts the readiness sequence of a session.
type fakeTarget struct {
	exists     func(check int) bool
	aliveAfter int // number of checks before Alive reports true; -1 for never
	sendErr    error

	checks int
	sent   []string
}

func (f *fakeTarget) Exists() bool {
	if f.exists != nil {
		return f.exists(f.checks)
	}
	return true
}

func (f *fakeTarget) Alive() bool {
	f.checks++
	if f.aliveAfter < 0 {
		return false
	}
	return f.checks > f.aliveAfter
}

func (f *fakeTarget) Send(text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, text)
	return nil
}

func newTestInjector(target Target, warn func(string)) (*Injector, *[]time.Duration) {
	var sleeps []time.Duration
	inj := newInjector(target, warn, InjectInterval, InjectMaxAttempts, func(d time.Duration) {
		sleeps = append(sleeps, d)
	})
	return inj, &sleeps
}

func TestInjectorSendsWhenImmediatelyReady(t *testing.T) {
	target := &fakeTarget{aliveAfter: 0}
	warned := 0
	inj, sleeps := newTestInjector(target, func(string) { warned++ })

	state := inj.SendWhenReady("hello", InjectDelayReused)
	require.Equal(t, InjectSent, state)
	require.Equal(t, []string{"hello"}, target.sent)
	require.Zero(t, warned)
	// Only the initial delay was slept.
	require.Equal(t, []time.Duration{InjectDelayReused}, *sleeps)
}

func TestInjectorRetriesUntilReady(t *testing.T) {
	target := &fakeTarget{aliveAfter: 5}
	inj, sleeps := newTestInjector(target, nil)

	state := inj.SendWhenReady("payload", InjectDelayCreated)
	require.Equal(t, InjectSent, state)
	require.Equal(t, []string{"payload"}, target.sent)
	require.Equal(t, 6, target.checks)
	// Initial delay plus one interval per failed check.
	require.Len(t, *sleeps, 6)
	require.Equal(t, InjectDelayCreated, (*sleeps)[0])
	for _, d := range (*sleeps)[1:] {
		require.Equal(t, InjectInterval, d)
	}
}

func TestInjectorGivesUpAfterCeiling(t *testing.T) {
	target := &fakeTarget{aliveAfter: -1}
	var warnings []string
	inj, sleeps := newTestInjector(target, func(msg string) { warnings = append(warnings, msg) })

	state := inj.SendWhenReady("payload", InjectDelayCreated)
	require.Equal(t, InjectGaveUp, state)
	require.Empty(t, target.sent)

	// Exactly 40 readiness checks, exactly one warning.
	require.Equal(t, InjectMaxAttempts, target.checks)
	require.Equal(t, []string{"terminal was not ready for input"}, warnings)

	// Initial delay plus an interval between consecutive checks.
	require.Len(t, *sleeps, InjectMaxAttempts)
}

func TestInjectorAbortsSilentlyWhenSessionVanishes(t *testing.T) {
	target := &fakeTarget{
		aliveAfter: -1,
		exists: func(check int) bool {
			return check < 3 // pane closed by the user after a few ticks
		},
	}
	warned := 0
	inj, _ := newTestInjector(target, func(string) { warned++ })

	state := inj.SendWhenReady("payload", InjectDelayReused)
	require.Equal(t, InjectWaiting, state)
	require.Empty(t, target.sent)
	require.Zero(t, warned)
}

func TestInjectorNeverSendsToVanishedSession(t *testing.T) {
	target := &fakeTarget{
		aliveAfter: 0,
		exists:     func(int) bool { return false },
	}
	inj, _ := newTestInjector(target, nil)

	state := inj.SendWhenReady("payload", 0)
	require.Equal(t, InjectWaiting, state)
	require.Empty(t, target.sent)
	require.Zero(t, target.checks)
}

func TestInjectorSendErrorGivesUp(t *testing.T) {
	target := &fakeTarget{aliveAfter: 0, sendErr: errors.New("broken pipe")}
	var warnings []string
	inj, _ := newTestInjector(target, func(msg string) { warnings = append(warnings, msg) })

	state := inj.SendWhenReady("payload", 0)
	require.Equal(t, InjectGaveUp, state)
	require.Len(t, warnings, 1)
}
