package menu

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"
)

// Controller maps menu commands to handlers and owns the menu labels. It
// never holds document or run-state itself: both are reached through Deps.
type Controller struct {
	doc      Document
	persist  Persister
	host     Host
	files    FileDialog
	dialogs  BodyDialogs
	notifier Notifier
	log      zerolog.Logger

	commands []Command
	byID     map[CommandID]int
	menus    []Menu

	labelMu sync.RWMutex
	labels  map[CommandID]string

	run  sync.Mutex
	busy atomic.Bool
}

func New(deps Deps) *Controller {
	c := &Controller{
		doc:      deps.Document,
		persist:  deps.Persister,
		host:     deps.Host,
		files:    deps.Files,
		dialogs:  deps.Bodies,
		notifier: deps.Notifier,
		log:      deps.Logger.With().Str("component", "menu").Logger(),
		commands: commandTable(),
		menus:    menuLayout(),
		labels:   make(map[CommandID]string),
	}
	c.byID = make(map[CommandID]int, len(c.commands))
	for i, cmd := range c.commands {
		c.byID[cmd.ID] = i
		c.labels[cmd.ID] = cmd.Label
	}
	return c
}

// Dispatch runs the handler bound to id. Only one handler runs at a time;
// a second Dispatch while one is in flight returns ErrBusy.
func (c *Controller) Dispatch(ctx context.Context, id CommandID) error {
	i, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	cmd := c.commands[i]

	if !c.run.TryLock() {
		return fmt.Errorf("%w: %s", ErrBusy, id)
	}
	defer c.run.Unlock()

	if !cmd.Enabled(c) {
		return fmt.Errorf("%w: %s", ErrCommandDisabled, id)
	}

	c.busy.Store(true)
	defer c.busy.Store(false)

	c.log.Debug().Str("command", string(id)).Msg("dispatch")
	if err := cmd.Handler(ctx, c); err != nil {
		c.log.Error().Err(err).Str("command", string(id)).Msg("command failed")
		return fmt.Errorf("%s: %w", id, err)
	}
	return nil
}

// Busy reports whether a handler is currently running.
func (c *Controller) Busy() bool { return c.busy.Load() }

func (c *Controller) Menus() []Menu { return c.menus }

// Commands returns the command table in registration order.
func (c *Controller) Commands() []Command {
	out := make([]Command, len(c.commands))
	copy(out, c.commands)
	return out
}

func (c *Controller) Command(id CommandID) (Command, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Command{}, false
	}
	return c.commands[i], true
}

func (c *Controller) Label(id CommandID) string {
	c.labelMu.RLock()
	defer c.labelMu.RUnlock()
	return c.labels[id]
}

func (c *Controller) setLabel(id CommandID, label string) {
	c.labelMu.Lock()
	c.labels[id] = label
	c.labelMu.Unlock()
}

func (c *Controller) Enabled(id CommandID) bool {
	i, ok := c.byID[id]
	if !ok {
		return false
	}
	return c.commands[i].Enabled(c)
}

// syncSimulationLabel names the outcome of the toggle about to happen, so
// it must run before the toggle itself.
func (c *Controller) syncSimulationLabel() {
	if !c.host.IsSimulationRunning() {
		c.setLabel(CmdSimToggle, LabelStop)
	} else {
		c.setLabel(CmdSimToggle, LabelStart)
	}
}

// RefreshLabels re-derives the toggle label from the current run-state.
// The view calls it whenever the menu bar becomes visible.
func (c *Controller) RefreshLabels() {
	if c.host.IsSimulationRunning() {
		c.setLabel(CmdSimToggle, LabelStop)
	} else {
		c.setLabel(CmdSimToggle, LabelStart)
	}
}

// Lookup resolves a typed name (ID, label, or alias, case-insensitive) to a
// command. On a miss the error suggests the closest name.
func (c *Controller) Lookup(name string) (CommandID, error) {
	key := normalize(name)
	if key == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownCommand)
	}

	best, bestDist := "", -1
	for _, cmd := range c.commands {
		for _, cand := range c.names(cmd) {
			if cand == key {
				return cmd.ID, nil
			}
			d := levenshtein.ComputeDistance(key, cand)
			if bestDist < 0 || d < bestDist {
				best, bestDist = cand, d
			}
		}
	}
	return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownCommand, name, best)
}

func (c *Controller) names(cmd Command) []string {
	names := []string{normalize(string(cmd.ID)), normalize(cmd.Label), normalize(c.Label(cmd.ID))}
	for _, a := range cmd.Aliases {
		names = append(names, normalize(a))
	}
	return names
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
