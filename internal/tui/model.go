package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/menu"
	"github.com/san-kum/gravsandbox/internal/physics"
	"github.com/san-kum/gravsandbox/internal/viz"
)

const maxTrail = 40

type point struct{ x, y float64 }

// Model is the Bubble Tea view adapter around the menu controller.
type Model struct {
	ctx    context.Context
	ctrl   *menu.Controller
	host   *Host
	doc    *body.Document
	engine *physics.Engine
	log    zerolog.Logger
	styles viz.Styles

	keys map[string]menu.CommandID

	width, height int

	menuOpen bool
	menuIdx  int
	itemIdx  int

	modal   *modal
	pending []modalRequest

	cmdline   textinput.Model
	cmdlineOn bool

	cursor   int
	viewport viz.Viewport
	baseZoom float64
	trail    bool
	trails   map[string][]point
	// document version the trails were last pruned against
	docVersion uint64
	ticking    bool
	lastDir    string
	status     string
	quitting   bool
}

type ModelOptions struct {
	Scale    float64
	Trail    bool
	Theme    string
	StartDir string
	Logger   zerolog.Logger
}

func NewModel(ctx context.Context, ctrl *menu.Controller, host *Host, doc *body.Document, engine *physics.Engine, opts ModelOptions) Model {
	keys := make(map[string]menu.CommandID)
	for _, cmd := range ctrl.Commands() {
		keys[cmd.Key] = cmd.ID
		if cmd.Key == "space" {
			keys[" "] = cmd.ID
		}
	}

	ci := textinput.New()
	ci.Prompt = ":"
	ci.Placeholder = "command"
	ci.CharLimit = 64

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		host:     host,
		doc:      doc,
		engine:   engine,
		log:      opts.Logger.With().Str("component", "tui").Logger(),
		styles:   viz.NewStyles(viz.GetTheme(opts.Theme)),
		keys:     keys,
		width:    100,
		height:   32,
		cmdline:  ci,
		viewport: viz.Viewport{Scale: opts.Scale},
		baseZoom: opts.Scale,
		trail:    opts.Trail,
		trails:   make(map[string][]point),
		lastDir:  opts.StartDir,
	}
	m.recenter()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m, nil

	case modalRequest:
		if m.modal != nil {
			m.pending = append(m.pending, msg)
			return m, nil
		}
		return m.openModal(msg)

	case resetViewMsg:
		m.engine.Reset()
		m.trails = make(map[string][]point)
		m.viewport.Scale = m.baseZoom
		m.recenter()
		m.cursor = 0
		return m, nil

	case refreshMsg:
		m.syncCursor()
		if v := m.doc.Version(); v != m.docVersion {
			m.docVersion = v
			m.pruneTrails()
		}
		return m, nil

	case runStateMsg:
		if msg.running && !m.ticking {
			m.ticking = true
			return m, tick()
		}
		return m, nil

	case tickMsg:
		if !m.host.IsSimulationRunning() {
			m.ticking = false
			return m, nil
		}
		if !m.ctrl.Busy() && m.doc.Len() > 0 {
			m.engine.Tick(m.doc)
			m.recordTrails()
		}
		return m, tick()

	case closeMsg:
		m.quitting = true
		return m, tea.Quit

	case commandDoneMsg:
		if msg.err != nil {
			m.setStatus(describeError(msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.modal != nil {
			return m.updateModal(msg)
		}
		if m.cmdlineOn {
			return m.updateCmdline(msg)
		}
		if m.menuOpen {
			return m.updateMenu(msg)
		}
		return m.handleKey(msg)
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.cmdlineOn {
		var cmd tea.Cmd
		m.cmdline, cmd = m.cmdline.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f10", "m":
		m.openMenu()
		return m, nil
	case ":":
		m.cmdlineOn = true
		m.cmdline.SetValue("")
		return m, m.cmdline.Focus()
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "+", "=":
		m.viewport.Zoom(1.25)
		return m, nil
	case "-", "_":
		m.viewport.Zoom(0.8)
		return m, nil
	case "c":
		m.recenter()
		return m, nil
	case "t":
		m.trail = !m.trail
		m.trails = make(map[string][]point)
		return m, nil
	}

	if id, ok := m.keys[msg.String()]; ok {
		return m, m.dispatch(id)
	}
	return m, nil
}

// dispatch runs a command on its own goroutine, so modal dialogs can block
// the handler while the program keeps processing input.
func (m *Model) dispatch(id menu.CommandID) tea.Cmd {
	if m.ctrl.Busy() {
		m.setStatus("busy: finish the open dialog first")
		return nil
	}
	if !m.ctrl.Enabled(id) {
		m.setStatus(fmt.Sprintf("%s is not available", m.ctrl.Label(id)))
		return nil
	}
	m.status = ""
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return commandDoneMsg{id: id, err: ctrl.Dispatch(ctx, id)}
	}
}

func (m *Model) openMenu() {
	m.ctrl.RefreshLabels()
	m.menuOpen = true
	m.menuIdx = 0
	m.itemIdx = firstItem(m.ctrl.Menus()[0])
}

func firstItem(mn menu.Menu) int {
	for i, it := range mn.Items {
		if !it.Separator {
			return i
		}
	}
	return 0
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menus := m.ctrl.Menus()
	cur := menus[m.menuIdx]

	switch msg.String() {
	case "esc", "f10", "m":
		m.menuOpen = false
	case "left", "h":
		m.menuIdx = (m.menuIdx - 1 + len(menus)) % len(menus)
		m.itemIdx = firstItem(menus[m.menuIdx])
	case "right", "l":
		m.menuIdx = (m.menuIdx + 1) % len(menus)
		m.itemIdx = firstItem(menus[m.menuIdx])
	case "up", "k":
		m.itemIdx = stepItem(cur, m.itemIdx, -1)
	case "down", "j":
		m.itemIdx = stepItem(cur, m.itemIdx, 1)
	case "enter":
		id := cur.Items[m.itemIdx].Command
		m.menuOpen = false
		return m, m.dispatch(id)
	}
	return m, nil
}

// stepItem moves from i by dir, skipping separators and wrapping.
func stepItem(mn menu.Menu, i, dir int) int {
	n := len(mn.Items)
	for k := 0; k < n; k++ {
		i = (i + dir + n) % n
		if !mn.Items[i].Separator {
			return i
		}
	}
	return i
}

func (m Model) updateCmdline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cmdlineOn = false
		m.cmdline.Blur()
		return m, nil
	case "enter":
		name := m.cmdline.Value()
		m.cmdlineOn = false
		m.cmdline.Blur()
		id, err := m.ctrl.Lookup(name)
		if err != nil {
			m.setStatus(describeError(err))
			return m, nil
		}
		return m, m.dispatch(id)
	}
	var cmd tea.Cmd
	m.cmdline, cmd = m.cmdline.Update(msg)
	return m, cmd
}

func (m Model) openModal(req modalRequest) (tea.Model, tea.Cmd) {
	md, cmd := newModal(req, m.lastDir)
	m.modal = md
	m.menuOpen = false
	m.cmdlineOn = false
	return m, cmd
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	res, done, cmd := m.modal.update(msg)
	if !done {
		return m, cmd
	}

	if res.ok && res.path != "" {
		m.lastDir = filepath.Dir(res.path)
	}
	m.modal.req.reply <- res
	m.modal = nil

	if len(m.pending) > 0 {
		next := m.pending[0]
		m.pending = m.pending[1:]
		return m.openModal(next)
	}
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	bodies := m.doc.Bodies()
	if len(bodies) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = (m.cursor + delta + len(bodies)) % len(bodies)
	if err := m.doc.Select(bodies[m.cursor].ID); err != nil {
		m.log.Warn().Err(err).Msg("select body")
	}
}

// syncCursor points the list cursor at the document's selection.
func (m *Model) syncCursor() {
	bodies := m.doc.Bodies()
	if sel := m.doc.Selected(); sel != nil {
		for i, b := range bodies {
			if b.ID == sel.ID {
				m.cursor = i
				return
			}
		}
	}
	if m.cursor >= len(bodies) {
		m.cursor = max(len(bodies)-1, 0)
	}
}

// recenter moves the view to the centre of mass.
func (m *Model) recenter() {
	var cx, cy, total float64
	for _, b := range m.doc.Bodies() {
		cx += b.Mass * b.X
		cy += b.Mass * b.Y
		total += b.Mass
	}
	if total > 0 {
		cx /= total
		cy /= total
	}
	m.viewport.CenterX = cx
	m.viewport.CenterY = cy
}

func (m *Model) recordTrails() {
	if !m.trail {
		return
	}
	for _, b := range m.doc.Bodies() {
		t := append(m.trails[b.ID], point{b.X, b.Y})
		if len(t) > maxTrail {
			t = t[len(t)-maxTrail:]
		}
		m.trails[b.ID] = t
	}
}

// pruneTrails drops the trails of bodies no longer in the document.
func (m *Model) pruneTrails() {
	live := make(map[string]bool, m.doc.Len())
	for _, b := range m.doc.Bodies() {
		live[b.ID] = true
	}
	for id := range m.trails {
		if !live[id] {
			delete(m.trails, id)
		}
	}
}

func (m *Model) setStatus(s string) { m.status = s }

func describeError(err error) string {
	switch {
	case errors.Is(err, menu.ErrBusy):
		return "busy: finish the open dialog first"
	case errors.Is(err, body.ErrInvalid):
		return "invalid body: " + err.Error()
	default:
		return err.Error()
	}
}
