// Package app wires the user-facing flows: open or reuse an assistant
// session, and seed it with a reference to the file being edited.
package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"agent-pane/config"
	"agent-pane/log"
	"agent-pane/notify"
	"agent-pane/prompt"
	"agent-pane/session"
	"agent-pane/workdir"
)

// ErrNoFile is returned by Send when no file path was supplied. Context
// delivery needs a file to reference.
var ErrNoFile = errors.New("no file path for current buffer")

// App holds the pieces of one editor-side invocation.
type App struct {
	cfg      *config.Config
	manager  *session.Manager
	resolver workdir.Resolver
	builder  prompt.Builder
}

// New assembles an App from the merged configuration and a terminal host
// (nil when no host integration is available). customResolver overrides the
// configured working-directory policy when non-nil.
func New(cfg *config.Config, host session.Host, customResolver workdir.ResolverFunc) *App {
	return &App{
		cfg:     cfg,
		manager: session.NewManager(cfg, host),
		resolver: workdir.Resolver{
			Policy: cfg.WorkDirPolicy,
			Custom: customResolver,
		},
		builder: prompt.Builder{
			UseMentionPrefix: cfg.UseMentionPrefix,
			Template:         cfg.PromptTemplate,
			TemplateRange:    cfg.PromptTemplateRange,
		},
	}
}

// Manager exposes the session manager for subcommands that need it.
func (a *App) Manager() *session.Manager {
	return a.manager
}

// Open opens or reuses an assistant session with no payload.
func (a *App) Open() error {
	cwd := a.resolver.Resolve("", "")
	_, created, err := a.manager.OpenOrReuse(cwd)
	if err != nil {
		a.reportOpenError(err)
		return err
	}
	if created {
		notify.Infof("started %s in %s", a.cfg.Program, cwd)
	} else {
		log.InfoLog.Printf("reusing existing %s session", a.cfg.Program)
	}
	return nil
}

// Send opens or reuses a session and, once it is ready for input, delivers a
// prompt referencing file. startLine and endLine carry an optional 1-based
// line range; pass 0,0 for none. The range is normalized, so selection
// direction does not matter.
func (a *App) Send(file string, startLine, endLine int) error {
	if file == "" {
		notify.Errorf("%v", ErrNoFile)
		return ErrNoFile
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve file path: %w", err)
	}

	cwd := a.resolver.Resolve(file, absPath)
	relPath := workdir.Relativize(cwd, absPath)

	var rng *prompt.Range
	if startLine > 0 && endLine > 0 {
		r := prompt.NormalizeRange(startLine, endLine)
		rng = &r
	}
	payload := a.builder.Render(relPath, rng)

	target, created, err := a.manager.OpenOrReuse(cwd)
	if err != nil {
		a.reportOpenError(err)
		return err
	}

	delay := session.InjectDelayReused
	if created {
		delay = session.InjectDelayCreated
	}

	injector := session.NewInjector(target, func(msg string) {
		notify.Warnf("%s", msg)
	})
	state := injector.SendWhenReady(payload, delay)
	log.InfoLog.Printf("prompt delivery finished in state %d (created=%v)", state, created)
	return nil
}

func (a *App) reportOpenError(err error) {
	if errors.Is(err, session.ErrMissingExecutable) {
		notify.Errorf("%s is not installed or not on PATH", a.cfg.Program)
		return
	}
	notify.Errorf("failed to open assistant session: %v", err)
}
