package menu_test

import (
	"context"
	"sync"

	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/menu"
)

// journal records collaborator calls in order.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(call string) {
	j.mu.Lock()
	j.calls = append(j.calls, call)
	j.mu.Unlock()
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.calls))
	copy(out, j.calls)
	return out
}

func (j *journal) count(call string) int {
	n := 0
	for _, c := range j.all() {
		if c == call {
			n++
		}
	}
	return n
}

func (j *journal) index(call string) int {
	for i, c := range j.all() {
		if c == call {
			return i
		}
	}
	return -1
}

type fakeHost struct {
	j        *journal
	running  bool
	selected *body.Body
	onToggle func()
}

func (h *fakeHost) ResetView() { h.j.add("reset") }
func (h *fakeHost) Update()    { h.j.add("update") }
func (h *fakeHost) Close()     { h.j.add("close") }

func (h *fakeHost) ToggleSimulation() {
	if h.onToggle != nil {
		h.onToggle()
	}
	h.running = !h.running
	h.j.add("toggle")
}

func (h *fakeHost) IsSimulationRunning() bool { return h.running }

func (h *fakeHost) SelectedBody() *body.Body {
	h.j.add("selected")
	return h.selected
}

type fakeFiles struct {
	j      *journal
	path   string
	ok     bool
	titles []string
	filter menu.Filter
	block  chan struct{}
}

func (f *fakeFiles) ShowDialog(ctx context.Context, title string, filter menu.Filter) (string, bool) {
	f.j.add("dialog")
	f.titles = append(f.titles, title)
	f.filter = filter
	if f.block != nil {
		<-f.block
	}
	return f.path, f.ok
}

type fakePersister struct {
	j       *journal
	doc     *body.Document
	scene   []body.Body
	loadErr error
	saveErr error
	saved   []string
}

func (p *fakePersister) Load(path string) error {
	p.j.add("load:" + path)
	if p.loadErr != nil {
		return p.loadErr
	}
	p.doc.Replace(p.scene)
	return nil
}

func (p *fakePersister) Save(path string) error {
	p.j.add("save:" + path)
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = append(p.saved, path)
	return nil
}

type fakeNotifier struct {
	j        *journal
	titles   []string
	messages []string
}

func (n *fakeNotifier) ShowError(ctx context.Context, title, message string) {
	n.j.add("error")
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
}

type fakeDialogs struct {
	j *journal

	add   body.Body
	addOK bool

	edit       body.Body
	editOK     bool
	editSeen   *body.Body
	editCalled bool

	removeID   string
	removeOK   bool
	removeSeen []body.Body

	host menu.Host
}

func (d *fakeDialogs) AddBody(ctx context.Context, host menu.Host) (body.Body, bool) {
	d.j.add("add-dialog")
	d.host = host
	return d.add, d.addOK
}

func (d *fakeDialogs) EditBody(ctx context.Context, host menu.Host, selected *body.Body) (body.Body, bool) {
	d.j.add("edit-dialog")
	d.host = host
	d.editCalled = true
	d.editSeen = selected
	return d.edit, d.editOK
}

func (d *fakeDialogs) RemoveBody(ctx context.Context, host menu.Host, bodies []body.Body) (string, bool) {
	d.j.add("remove-dialog")
	d.host = host
	d.removeSeen = bodies
	return d.removeID, d.removeOK
}
