package session

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"agent-pane/log"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// FallbackSession is the minimal built-in terminal path used when no host
// integration is available: the assistant is spawned directly on a
// pseudo-terminal, its output streamed to the current terminal and the
// user's keystrokes forwarded back in.
type FallbackSession struct {
	launch Launch

	mu      sync.Mutex
	cmd     *exec.Cmd
	ptmx    *os.File
	exited  bool
	restore func()
}

// StartFallback spawns launch in workDir on a fresh pty, attached to the
// invoking terminal. onExit, if non-nil, runs once the child exits.
func StartFallback(launch Launch, workDir string, onExit func()) (*FallbackSession, error) {
	return startFallback(launch, workDir, onExit, os.Stdin, os.Stdout)
}

// startFallback wires explicit streams for tests.
func startFallback(launch Launch, workDir string, onExit func(), stdin io.Reader, stdout io.Writer) (*FallbackSession, error) {
	if launch.IsZero() {
		return nil, fmt.Errorf("empty launch command")
	}

	argv := launch.Argv()
	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = workDir

	ptmx, err := pty.Start(c)
	if err != nil {
		return nil, fmt.Errorf("error starting fallback session: %w", err)
	}

	f := &FallbackSession{
		launch: launch,
		cmd:    c,
		ptmx:   ptmx,
	}

	// Match the pane to the current terminal and put the terminal in raw
	// mode so keystrokes pass through uninterpreted. Skipped when stdin is
	// not a terminal.
	if in, ok := stdin.(*os.File); ok && term.IsTerminal(int(in.Fd())) {
		if cols, rows, sizeErr := term.GetSize(int(in.Fd())); sizeErr == nil {
			_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
		}
		if oldState, rawErr := term.MakeRaw(int(in.Fd())); rawErr == nil {
			fd := int(in.Fd())
			f.restore = func() { _ = term.Restore(fd, oldState) }
		}
	}

	// Stream output so the session is visible in the invoking terminal.
	go func() {
		_, _ = io.Copy(stdout, ptmx)
	}()

	// Forward the user's input so the session stays interactive after the
	// seeded prompt.
	go func() {
		_, _ = io.Copy(ptmx, stdin)
	}()

	go func() {
		_ = c.Wait()
		f.mu.Lock()
		f.exited = true
		f.restoreTerminalLocked()
		f.mu.Unlock()
		log.InfoLog.Printf("fallback session exited: %s", launch.Program())
		if onExit != nil {
			onExit()
		}
	}()

	return f, nil
}

// Launch returns the command this session was started with.
func (f *FallbackSession) Launch() Launch {
	return f.launch
}

// Alive is a non-blocking probe of the child process.
func (f *FallbackSession) Alive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exited || f.cmd == nil || f.cmd.Process == nil {
		return false
	}
	// Signal 0 probes existence without delivering anything.
	return unix.Kill(f.cmd.Process.Pid, 0) == nil
}

// Exists reports whether the pty backing the session is still open.
func (f *FallbackSession) Exists() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ptmx != nil && !f.exited
}

// Send writes text followed by a carriage return as raw bytes to the pty.
func (f *FallbackSession) Send(text string) error {
	f.mu.Lock()
	ptmx := f.ptmx
	f.mu.Unlock()
	if ptmx == nil {
		return fmt.Errorf("fallback session has no pty")
	}
	if _, err := ptmx.Write([]byte(text + "\r")); err != nil {
		return fmt.Errorf("error writing to fallback pty: %w", err)
	}
	return nil
}

// Close releases the pty and restores the terminal. The child is left to
// exit on its own.
func (f *FallbackSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restoreTerminalLocked()
	if f.ptmx == nil {
		return nil
	}
	err := f.ptmx.Close()
	f.ptmx = nil
	if err != nil {
		return fmt.Errorf("error closing fallback pty: %w", err)
	}
	return nil
}

// restoreTerminalLocked undoes raw mode once. Caller holds f.mu.
func (f *FallbackSession) restoreTerminalLocked() {
	if f.restore != nil {
		f.restore()
		f.restore = nil
	}
}
