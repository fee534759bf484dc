package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/menu"
)

// Dialogs launches modals inside the running program and waits for the
// answer. It is the file dialog, the body dialogs and the error notifier
// of the menu controller.
type Dialogs struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func NewDialogs() *Dialogs {
	return &Dialogs{}
}

func (d *Dialogs) SetSender(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	d.mu.Unlock()
}

// ask posts req and blocks for the reply. A cancelled context or a missing
// program counts as the user cancelling.
func (d *Dialogs) ask(ctx context.Context, req modalRequest) modalResult {
	d.mu.RLock()
	send := d.send
	d.mu.RUnlock()
	if send == nil {
		return modalResult{}
	}

	req.reply = make(chan modalResult, 1)
	send(req)

	select {
	case res := <-req.reply:
		return res
	case <-ctx.Done():
		return modalResult{}
	}
}

func (d *Dialogs) ShowDialog(ctx context.Context, title string, filter menu.Filter) (string, bool) {
	res := d.ask(ctx, modalRequest{kind: modalFile, title: title, filter: filter})
	return res.path, res.ok
}

func (d *Dialogs) AddBody(ctx context.Context, host menu.Host) (body.Body, bool) {
	res := d.ask(ctx, modalRequest{kind: modalBodyForm, title: "Add body"})
	return res.body, res.ok
}

func (d *Dialogs) EditBody(ctx context.Context, host menu.Host, selected *body.Body) (body.Body, bool) {
	if selected == nil {
		d.ShowError(ctx, "Edit body", "No body selected.\nSelect a body in the list first.")
		return body.Body{}, false
	}
	res := d.ask(ctx, modalRequest{kind: modalBodyForm, title: "Edit body", body: selected})
	return res.body, res.ok
}

func (d *Dialogs) RemoveBody(ctx context.Context, host menu.Host, bodies []body.Body) (string, bool) {
	if len(bodies) == 0 {
		return "", false
	}
	req := modalRequest{kind: modalRemove, title: "Remove body", bodies: bodies}
	if sel := host.SelectedBody(); sel != nil {
		req.selected = sel.ID
	}
	res := d.ask(ctx, req)
	return res.id, res.ok
}

func (d *Dialogs) ShowError(ctx context.Context, title, message string) {
	d.ask(ctx, modalRequest{kind: modalError, title: title, message: message})
}
