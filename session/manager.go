package session

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"agent-pane/config"
	"agent-pane/log"
)

// ErrMissingExecutable is returned when the configured assistant binary
// cannot be found on PATH. No session is touched in that case.
var ErrMissingExecutable = errors.New("assistant executable not found")

// lookPath and resolveProgram are swapped in tests.
var (
	lookPath       = exec.LookPath
	resolveProgram = config.ResolveProgram
)

// Manager owns session reuse and creation for one process lifetime. It holds
// the terminal host, the merged configuration, and the single-slot fallback
// session used when no host integration is available.
type Manager struct {
	cfg  *config.Config
	host Host

	// fallback is the most recently created pty fallback session. At most
	// one is tracked; while its process is alive it is reused instead of
	// spawning another.
	fallback *FallbackSession
}

// NewManager creates a Manager. host may be nil when no terminal host
// integration is present.
func NewManager(cfg *config.Config, host Host) *Manager {
	return &Manager{cfg: cfg, host: host}
}

// BareLaunch returns the launch command without a prompt: the key used for
// reuse matching and the argv new sessions are spawned with.
func (m *Manager) BareLaunch() Launch {
	return BuildLaunch(m.cfg.Program, m.cfg.Args, "")
}

// Host returns the terminal host, or nil when unavailable.
func (m *Manager) Host() Host {
	if m.host == nil || !m.host.Available() {
		return nil
	}
	return m.host
}

// OpenOrReuse returns a target for an assistant session launched with the
// bare command, reusing a live matching session when one exists. The boolean
// reports whether a new session was created.
func (m *Manager) OpenOrReuse(cwd string) (Target, bool, error) {
	if _, err := lookPath(m.cfg.Program); err != nil {
		// Not on PATH, but the program may still be reachable as a shell
		// alias, the way doctor resolves it.
		if _, aliasErr := resolveProgram(m.cfg.Program); aliasErr != nil {
			return nil, false, fmt.Errorf("%w: %s", ErrMissingExecutable, m.cfg.Program)
		}
	}

	launch := m.BareLaunch()

	if host := m.Host(); host != nil {
		if pane, ok := FindMatch(host, launch); ok && host.Alive(pane) {
			if err := host.Show(pane); err != nil {
				log.WarningLog.Printf("could not show session %s: %v", pane.ID, err)
			}
			return &paneTarget{host: host, pane: pane}, false, nil
		}

		pane, err := host.Open(launch, OpenOptions{
			WorkDir:        cwd,
			SessionName:    m.cfg.SessionPrefix + sanitizeName(m.cfg.Program),
			SplitDirection: m.cfg.SplitDirection,
			SplitPercent:   m.cfg.SplitPercent,
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to open session: %w", err)
		}
		return &paneTarget{host: host, pane: pane}, true, nil
	}

	// No host integration: fall back to a raw pty spawn, reusing the live
	// fallback session if one is already running.
	if m.fallback != nil && m.fallback.Alive() {
		return m.fallback, false, nil
	}

	fb, err := StartFallback(launch, cwd, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to start fallback session: %w", err)
	}
	m.fallback = fb
	return fb, true, nil
}

var whiteSpaceRegex = regexp.MustCompile(`\s+`)

// sanitizeName makes a program name usable as a host session name.
func sanitizeName(program string) string {
	name := filepath.Base(program)
	name = whiteSpaceRegex.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, ".", "_")
}

// paneTarget adapts a host pane to the injector's Target interface.
type paneTarget struct {
	host Host
	pane Pane
}

func (t *paneTarget) Exists() bool {
	return t.host.Exists(t.pane)
}

func (t *paneTarget) Alive() bool {
	return t.host.Alive(t.pane)
}

func (t *paneTarget) Send(text string) error {
	return t.host.SendText(t.pane, text)
}
