// Package tmux implements the terminal host on top of tmux: panes are
// spawned with split-window or new-session, enumerated with list-panes, and
// fed input with send-keys.
package tmux

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"agent-pane/cmd"
	"agent-pane/config"
	"agent-pane/log"
	"agent-pane/session"
)

const paneFormat = "#{pane_id}\t#{session_name}\t#{window_id}\t#{pane_dead}\t#{pane_pid}\t#{pane_start_command}"

// Host drives tmux through its CLI.
type Host struct {
	cmdExec cmd.Executor
}

// NewHost creates a tmux-backed host.
func NewHost() *Host {
	return &Host{cmdExec: cmd.MakeExecutor()}
}

// NewHostWithDeps creates a Host with an injected executor for testing.
func NewHostWithDeps(cmdExec cmd.Executor) *Host {
	return &Host{cmdExec: cmdExec}
}

// Available reports whether tmux can be used.
func (h *Host) Available() bool {
	return h.cmdExec.Run(exec.Command("tmux", "-V")) == nil
}

// insideTmux reports whether we are running from within a tmux client.
func insideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// Open spawns launch in a new pane. Inside tmux the pane is a split of the
// current window, so it lands next to the editor; outside, a detached
// session is created instead.
func (h *Host) Open(launch session.Launch, opts session.OpenOptions) (session.Pane, error) {
	var spawn *exec.Cmd
	if insideTmux() {
		splitFlag := "-h"
		if opts.SplitDirection == config.SplitBelow {
			splitFlag = "-v"
		}
		args := []string{"split-window", splitFlag, "-P", "-F", "#{pane_id}\t#{window_id}"}
		if opts.SplitPercent > 0 {
			args = append(args, "-p", strconv.Itoa(opts.SplitPercent))
		}
		if opts.WorkDir != "" {
			args = append(args, "-c", opts.WorkDir)
		}
		args = append(args, launch.String())
		spawn = exec.Command("tmux", args...)
	} else {
		args := []string{"new-session", "-d", "-P", "-F", "#{pane_id}\t#{window_id}"}
		if opts.SessionName != "" {
			args = append(args, "-s", opts.SessionName)
		}
		if opts.WorkDir != "" {
			args = append(args, "-c", opts.WorkDir)
		}
		args = append(args, launch.String())
		spawn = exec.Command("tmux", args...)
	}

	output, err := h.cmdExec.Output(spawn)
	if err != nil {
		return session.Pane{}, fmt.Errorf("error spawning tmux pane: %w", err)
	}

	fields := strings.Split(strings.TrimSpace(string(output)), "\t")
	pane := session.Pane{Command: launch}
	if len(fields) > 0 {
		pane.ID = fields[0]
	}
	if len(fields) > 1 {
		pane.WindowID = fields[1]
	}

	// Refresh from list-panes to pick up the pid the host assigned.
	if fresh, ok := h.lookup(pane.ID); ok {
		fresh.Command = launch
		return fresh, nil
	}
	return pane, nil
}

// List enumerates all open panes across all tmux sessions.
func (h *Host) List() ([]session.Pane, error) {
	listCmd := exec.Command("tmux", "list-panes", "-a", "-F", paneFormat)
	output, err := h.cmdExec.Output(listCmd)
	if err != nil {
		// Exit status 1 with no server running is "no panes", not an error.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("error listing tmux panes: %w", err)
	}

	var panes []session.Pane
	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pane, ok := parsePaneLine(line)
		if !ok {
			log.WarningLog.Printf("skipping unparsable tmux pane line: %q", line)
			continue
		}
		panes = append(panes, pane)
	}
	return panes, nil
}

func parsePaneLine(line string) (session.Pane, bool) {
	fields := strings.SplitN(line, "\t", 6)
	if len(fields) < 6 {
		return session.Pane{}, false
	}
	pid, err := strconv.Atoi(fields[4])
	if err != nil {
		pid = 0
	}
	return session.Pane{
		ID:       fields[0],
		Session:  fields[1],
		WindowID: fields[2],
		Dead:     fields[3] == "1",
		PID:      pid,
		Command:  session.ParseCommand(fields[5]),
	}, true
}

// CommandFor returns the launch command recorded for the pane. Panes running
// a plain login shell have no start command and report ok=false.
func (h *Host) CommandFor(p session.Pane) (session.Launch, bool) {
	if p.Command.IsZero() {
		return session.Launch{}, false
	}
	return p.Command, true
}

// Show brings the pane's window and the pane itself into the foreground.
func (h *Host) Show(p session.Pane) error {
	if p.WindowID != "" {
		if err := h.cmdExec.Run(exec.Command("tmux", "select-window", "-t", p.WindowID)); err != nil {
			return fmt.Errorf("error selecting tmux window: %w", err)
		}
	}
	if err := h.cmdExec.Run(exec.Command("tmux", "select-pane", "-t", p.ID)); err != nil {
		return fmt.Errorf("error selecting tmux pane: %w", err)
	}
	return nil
}

// Exists reports whether the pane is still listed by the host.
func (h *Host) Exists(p session.Pane) bool {
	_, ok := h.lookup(p.ID)
	return ok
}

// Alive reports whether the pane's process channel is still running.
func (h *Host) Alive(p session.Pane) bool {
	fresh, ok := h.lookup(p.ID)
	return ok && !fresh.Dead && fresh.PID > 0
}

func (h *Host) lookup(paneID string) (session.Pane, bool) {
	if paneID == "" {
		return session.Pane{}, false
	}
	panes, err := h.List()
	if err != nil {
		return session.Pane{}, false
	}
	for _, pane := range panes {
		if pane.ID == paneID {
			return pane, true
		}
	}
	return session.Pane{}, false
}

// SendText delivers text literally, then taps enter.
func (h *Host) SendText(p session.Pane, text string) error {
	if err := h.cmdExec.Run(exec.Command("tmux", "send-keys", "-t", p.ID, "-l", "--", text)); err != nil {
		return fmt.Errorf("error sending keys to tmux pane: %w", err)
	}

	// Brief pause so the enter isn't swallowed into the literal text.
	time.Sleep(100 * time.Millisecond)
	if err := h.cmdExec.Run(exec.Command("tmux", "send-keys", "-t", p.ID, "Enter")); err != nil {
		return fmt.Errorf("error tapping enter on tmux pane: %w", err)
	}
	return nil
}

// IsAvailable checks if tmux is installed on the system.
func IsAvailable() bool {
	return exec.Command("tmux", "-V").Run() == nil
}

// CleanupSessions kills all tmux sessions created by agent-pane, identified
// by the session name prefix.
func CleanupSessions(prefix string, cmdExec cmd.Executor) error {
	listCmd := exec.Command("tmux", "list-sessions", "-F", "#{session_name}")
	output, err := cmdExec.Output(listCmd)
	if err != nil {
		// No server running means nothing to clean up.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil
		}
		return fmt.Errorf("failed to list tmux sessions: %w", err)
	}

	for _, name := range strings.Split(string(output), "\n") {
		name = strings.TrimSpace(name)
		if name == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		log.InfoLog.Printf("cleaning up tmux session: %s", name)
		if err := cmdExec.Run(exec.Command("tmux", "kill-session", "-t", name)); err != nil {
			return fmt.Errorf("failed to kill tmux session %s: %w", name, err)
		}
	}
	return nil
}
