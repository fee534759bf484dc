package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/gravsandbox/internal/config"
)

type harness struct {
	t    *testing.T
	s    *Session
	m    Model
	msgs chan tea.Msg
	dir  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.LastDir = t.TempDir()

	s := NewSession(cfg, zerolog.Nop())
	msgs := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) { msgs <- msg }
	s.Host.SetSender(send)
	s.Dialogs.SetSender(send)

	m := NewModel(context.Background(), s.Ctrl, s.Host, s.Doc, s.Engine, ModelOptions{
		Scale:    cfg.View.Scale,
		Trail:    true,
		StartDir: cfg.LastDir,
		Logger:   zerolog.Nop(),
	})
	return &harness{t: t, s: s, m: m, msgs: msgs, dir: cfg.LastDir}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "f10":
		return tea.KeyMsg{Type: tea.KeyF10}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) key(k string) tea.Cmd {
	return h.send(keyMsg(k))
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// async runs a dispatch command the way the program would, off the
// update goroutine.
func (h *harness) async(cmd tea.Cmd) <-chan tea.Msg {
	h.t.Helper()
	if cmd == nil {
		h.t.Fatal("expected a command")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	return done
}

func (h *harness) next() tea.Msg {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		return msg
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a message")
		return nil
	}
}

// nextModal returns the next modal request, feeding any other posted
// messages through the model first.
func (h *harness) nextModal() modalRequest {
	h.t.Helper()
	for {
		msg := h.next()
		if req, ok := msg.(modalRequest); ok {
			return req
		}
		h.send(msg)
	}
}

// drain feeds every queued message into the model.
func (h *harness) drain() {
	for {
		select {
		case msg := <-h.msgs:
			h.send(msg)
		default:
			return
		}
	}
}

func (h *harness) wait(done <-chan tea.Msg) commandDoneMsg {
	h.t.Helper()
	select {
	case msg := <-done:
		res, ok := msg.(commandDoneMsg)
		if !ok {
			h.t.Fatalf("expected commandDoneMsg, got %T", msg)
		}
		h.send(res)
		return res
	case <-time.After(2 * time.Second):
		h.t.Fatal("command did not finish")
		return commandDoneMsg{}
	}
}
