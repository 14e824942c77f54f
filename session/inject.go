package session

import (
	"time"

	"agent-pane/log"

	"github.com/atotto/clipboard"
)

// Injection timing. The process channel may refuse input for a short,
// variable window after spawn while the shell/TTY/assistant starts up, so
// delivery polls on a bounded schedule instead of hanging indefinitely.
const (
	InjectMaxAttempts = 40
	InjectInterval    = 50 * time.Millisecond

	// Initial delays callers pass to SendWhenReady depending on whether the
	// session was just created or reused.
	InjectDelayCreated = 1 * time.Second
	InjectDelayReused  = 100 * time.Millisecond
)

// InjectState is the injector's lifecycle state.
type InjectState int

const (
	// InjectWaiting is the initial state; it is also the final state when
	// the pane disappears before readiness (silent abort, not a failure).
	InjectWaiting InjectState = iota
	// InjectSent means the payload was delivered.
	InjectSent
	// InjectGaveUp means the retry ceiling was exhausted.
	InjectGaveUp
)

// Target is a live session input can be delivered to. Both host panes and
// the pty fallback satisfy it.
type Target interface {
	// Exists reports whether the session's backing buffer is still present.
	Exists() bool
	// Alive is a non-blocking probe of the session's process channel.
	Alive() bool
	// Send delivers text as raw input to the process channel.
	Send(text string) error
}

// Injector delivers a payload into a session once its process channel is
// confirmed running, retrying on a bounded schedule.
type Injector struct {
	target      Target
	warn        func(message string)
	interval    time.Duration
	maxAttempts int
	sleep       func(time.Duration)
}

// NewInjector creates an Injector with the standard schedule. warn receives
// the single user-visible warning when delivery is abandoned; it may be nil.
func NewInjector(target Target, warn func(string)) *Injector {
	return newInjector(target, warn, InjectInterval, InjectMaxAttempts, time.Sleep)
}

// newInjector wires explicit dependencies for tests.
func newInjector(target Target, warn func(string), interval time.Duration, maxAttempts int, sleep func(time.Duration)) *Injector {
	if warn == nil {
		warn = func(string) {}
	}
	return &Injector{
		target:      target,
		warn:        warn,
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleep,
	}
}

// SendWhenReady blocks until the payload is delivered, the session
// disappears, or the retry ceiling is reached, and returns the final state.
// initialDelay precedes the first readiness check; callers pass a larger
// value for freshly created sessions to cover process startup latency.
func (i *Injector) SendWhenReady(payload string, initialDelay time.Duration) InjectState {
	i.sleep(initialDelay)

	for attempt := 1; ; attempt++ {
		if !i.target.Exists() {
			// The session was closed before the assistant was ready.
			// Not a failure: no warning, no state transition.
			log.InfoLog.Printf("session closed before input could be delivered")
			return InjectWaiting
		}

		if i.target.Alive() {
			if err := i.target.Send(payload); err != nil {
				log.ErrorLog.Printf("error delivering input to session: %v", err)
				return i.giveUp(payload)
			}
			return InjectSent
		}

		if attempt >= i.maxAttempts {
			return i.giveUp(payload)
		}
		i.sleep(i.interval)
	}
}

func (i *Injector) giveUp(payload string) InjectState {
	i.warn("terminal was not ready for input")
	// Leave the prompt on the clipboard so the user can paste it manually.
	if err := clipboard.WriteAll(payload); err != nil {
		log.WarningLog.Printf("could not copy prompt to clipboard: %v", err)
	}
	return InjectGaveUp
}
