package notify

import (
	"errors"
	"testing"

	"agent-pane/log"

	"github.com/stretchr/testify/require"
)

func init() {
	log.Initialize()
}

func TestWarnfRaisesDesktopNotification(t *testing.T) {
	var titles, messages []string
	orig := desktop
	desktop = func(title, message string) error {
		titles = append(titles, title)
		messages = append(messages, message)
		return nil
	}
	t.Cleanup(func() { desktop = orig })

	Warnf("terminal was not ready for %s", "input")

	require.Equal(t, []string{appTitle}, titles)
	require.Equal(t, []string{"terminal was not ready for input"}, messages)
}

func TestWarnfSurvivesDesktopFailure(t *testing.T) {
	orig := desktop
	desktop = func(title, message string) error {
		return errors.New("no notification daemon")
	}
	t.Cleanup(func() { desktop = orig })

	// Must not panic or propagate; headless machines have no daemon.
	Warnf("something")
}

func TestInfofAndErrorfSkipDesktop(t *testing.T) {
	called := 0
	orig := desktop
	desktop = func(title, message string) error {
		called++
		return nil
	}
	t.Cleanup(func() { desktop = orig })

	Infof("started %s", "codex")
	Errorf("failed: %v", errors.New("boom"))

	require.Zero(t, called)
}
