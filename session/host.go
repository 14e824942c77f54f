package session

// Pane is an opaque handle to one terminal pane running a child process,
// owned by the terminal host. The handle is a weak reference used for
// lookup; it does not control the pane's lifecycle.
type Pane struct {
	// ID identifies the pane within the host.
	ID string
	// Session is the host session the pane belongs to.
	Session string
	// WindowID identifies the window the pane sits in, when the host has one.
	WindowID string
	// PID is the pane's process channel identifier (0 if unknown).
	PID int
	// Dead reports whether the host considers the pane's process exited.
	Dead bool
	// Command is the launch command the pane was started with, as recorded
	// by the host.
	Command Launch
}

// OpenOptions carry the window placement and working directory for a new
// pane.
type OpenOptions struct {
	WorkDir        string
	SessionName    string
	SplitDirection string
	SplitPercent   int
}

// Host is the terminal abstraction the session layer depends on: something
// that can spawn a subprocess attached to a pseudo-terminal inside a pane,
// enumerate open panes with their launch metadata, and deliver input.
type Host interface {
	// Available reports whether the host integration can be used at all.
	Available() bool

	// Open spawns a new pane running launch in opts.WorkDir.
	Open(launch Launch, opts OpenOptions) (Pane, error)

	// List enumerates the currently open panes.
	List() ([]Pane, error)

	// CommandFor returns the launch command the pane was started with.
	// ok is false when the host has no command metadata for the pane.
	CommandFor(p Pane) (launch Launch, ok bool)

	// Show brings the pane to the foreground.
	Show(p Pane) error

	// Alive is a non-blocking probe of the pane's process channel.
	Alive(p Pane) bool

	// Exists reports whether the pane's backing buffer is still present.
	Exists(p Pane) bool

	// SendText delivers text as raw input to the pane's process channel,
	// followed by a carriage return.
	SendText(p Pane, text string) error
}
