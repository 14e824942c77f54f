package session

import (
	"errors"

	"agent-pane/log"
)

func init() {
	log.Initialize()
}

// fakeHost is an in-memory Host for tests.
type fakeHost struct {
	available bool
	panes     []Pane
	listErr   error
	openErr   error
	sendErr   error

	opened []Launch
	shown  []string
	sent   map[string][]string

	nextID int
}

func newFakeHost() *fakeHost {
	return &fakeHost{available: true, sent: map[string][]string{}}
}

func (h *fakeHost) Available() bool {
	return h.available
}

func (h *fakeHost) Open(launch Launch, opts OpenOptions) (Pane, error) {
	if h.openErr != nil {
		return Pane{}, h.openErr
	}
	h.nextID++
	pane := Pane{
		ID:      "%" + string(rune('0'+h.nextID)),
		Session: opts.SessionName,
		PID:     1000 + h.nextID,
		Command: launch,
	}
	h.panes = append(h.panes, pane)
	h.opened = append(h.opened, launch)
	return pane, nil
}

func (h *fakeHost) List() ([]Pane, error) {
	if h.listErr != nil {
		return nil, h.listErr
	}
	return h.panes, nil
}

func (h *fakeHost) CommandFor(p Pane) (Launch, bool) {
	if p.Command.IsZero() {
		return Launch{}, false
	}
	return p.Command, true
}

func (h *fakeHost) Show(p Pane) error {
	h.shown = append(h.shown, p.ID)
	return nil
}

func (h *fakeHost) Alive(p Pane) bool {
	fresh, ok := h.find(p.ID)
	return ok && !fresh.Dead && fresh.PID > 0
}

func (h *fakeHost) Exists(p Pane) bool {
	_, ok := h.find(p.ID)
	return ok
}

func (h *fakeHost) SendText(p Pane, text string) error {
	if h.sendErr != nil {
		return h.sendErr
	}
	h.sent[p.ID] = append(h.sent[p.ID], text)
	return nil
}

func (h *fakeHost) find(id string) (Pane, bool) {
	for _, pane := range h.panes {
		if pane.ID == id {
			return pane, true
		}
	}
	return Pane{}, false
}

// markDead flips the pane's dead flag in place.
func (h *fakeHost) markDead(id string) {
	for i := range h.panes {
		if h.panes[i].ID == id {
			h.panes[i].Dead = true
		}
	}
}

// removePane drops the pane entirely, as if the user closed it.
func (h *fakeHost) removePane(id string) {
	for i := range h.panes {
		if h.panes[i].ID == id {
			h.panes = append(h.panes[:i], h.panes[i+1:]...)
			return
		}
	}
}

var errHostDown = errors.New("host down")
