package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/menu"
)

type (
	resetViewMsg struct{}
	refreshMsg   struct{}
	closeMsg     struct{}
	runStateMsg  struct{ running bool }
	tickMsg      time.Time
)

type commandDoneMsg struct {
	id  menu.CommandID
	err error
}

type modalKind int

const (
	modalFile modalKind = iota
	modalBodyForm
	modalRemove
	modalError
)

// modalRequest asks the model to show a modal. The requesting goroutine
// blocks on reply until the user is done.
type modalRequest struct {
	kind     modalKind
	title    string
	message  string
	filter   menu.Filter
	body     *body.Body
	bodies   []body.Body
	selected string
	reply    chan modalResult
}

type modalResult struct {
	ok   bool
	path string
	body body.Body
	id   string
}

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}
