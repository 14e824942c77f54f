package session

import "agent-pane/log"

// FindMatch scans the host's open panes for one launched with exactly the
// desired command and returns the first match in host enumeration order.
// Matching keys on command equality alone, not working directory: the same
// assistant started from a different directory reuses the session in its
// original directory.
func FindMatch(h Host, desired Launch) (Pane, bool) {
	panes, err := h.List()
	if err != nil {
		log.WarningLog.Printf("could not list host panes: %v", err)
		return Pane{}, false
	}

	for _, p := range panes {
		launch, ok := h.CommandFor(p)
		if !ok {
			continue
		}
		if launch.Equal(desired) {
			return p, true
		}
	}
	return Pane{}, false
}
