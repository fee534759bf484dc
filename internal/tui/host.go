package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsandbox/internal/body"
)

// Host is the window facade the menu controller drives. It owns the
// simulation run flag. View requests become messages to the running
// program, so every method is safe to call from a command goroutine.
type Host struct {
	doc     *body.Document
	running atomic.Bool

	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewHost(doc *body.Document) *Host {
	return &Host{doc: doc}
}

// SetSender wires the host to a program, normally (*tea.Program).Send.
func (h *Host) SetSender(send func(tea.Msg)) {
	h.mu.Lock()
	h.send = send
	h.mu.Unlock()
}

func (h *Host) post(msg tea.Msg) {
	h.mu.RLock()
	send := h.send
	h.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (h *Host) ResetView() { h.post(resetViewMsg{}) }
func (h *Host) Update()    { h.post(refreshMsg{}) }
func (h *Host) Close()     { h.post(closeMsg{}) }

func (h *Host) ToggleSimulation() {
	running := !h.running.Load()
	h.running.Store(running)
	h.post(runStateMsg{running: running})
}

func (h *Host) IsSimulationRunning() bool { return h.running.Load() }

func (h *Host) SelectedBody() *body.Body { return h.doc.Selected() }
