package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/config"
	"github.com/san-kum/gravsandbox/internal/menu"
	"github.com/san-kum/gravsandbox/internal/persist"
	"github.com/san-kum/gravsandbox/internal/physics"
)

type Options struct {
	Config *config.Config
	// ConfigPath, when set, receives the last used dialog directory on exit.
	ConfigPath string
	Logger     zerolog.Logger
	OpenPath   string
}

// Session is the wiring of one sandbox window: document, host, dialogs,
// persistence and the menu controller on top of them.
type Session struct {
	Doc     *body.Document
	Host    *Host
	Dialogs *Dialogs
	Engine  *physics.Engine
	Ctrl    *menu.Controller
}

func NewSession(cfg *config.Config, log zerolog.Logger) *Session {
	doc := body.NewDocument()
	host := NewHost(doc)
	dialogs := NewDialogs()
	ctrl := menu.New(menu.Deps{
		Document:  doc,
		Persister: persist.NewEngine(doc),
		Host:      host,
		Files:     dialogs,
		Bodies:    dialogs,
		Notifier:  dialogs,
		Logger:    log,
	})
	grav := physics.NewGravity(cfg.Physics.G, cfg.Physics.Softening)
	return &Session{
		Doc:     doc,
		Host:    host,
		Dialogs: dialogs,
		Engine:  physics.NewEngine(grav, cfg.Physics.Dt, cfg.Physics.StepsPerTick),
		Ctrl:    ctrl,
	}
}

// Run starts the interactive sandbox and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := NewSession(cfg, opts.Logger)
	if opts.OpenPath != "" {
		if err := persist.NewEngine(s.Doc).Load(opts.OpenPath); err != nil {
			return fmt.Errorf("open %s: %w", opts.OpenPath, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, s.Ctrl, s.Host, s.Doc, s.Engine, ModelOptions{
		Scale:    cfg.View.Scale,
		Trail:    cfg.View.Trail,
		Theme:    cfg.View.Theme,
		StartDir: cfg.LastDir,
		Logger:   opts.Logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	s.Host.SetSender(p.Send)
	s.Dialogs.SetSender(p.Send)

	opts.Logger.Info().Int("bodies", s.Doc.Len()).Msg("sandbox started")
	final, err := p.Run()
	// unblocks a command still waiting on a modal
	cancel()
	opts.Logger.Info().Msg("sandbox closed")
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run sandbox: %w", err)
	}

	if fm, ok := final.(Model); ok && opts.ConfigPath != "" && fm.lastDir != cfg.LastDir {
		cfg.LastDir = fm.lastDir
		if err := config.Save(opts.ConfigPath, cfg); err != nil {
			opts.Logger.Warn().Err(err).Str("path", opts.ConfigPath).Msg("save config")
		}
	}
	return nil
}
