package body

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Document is the set of bodies making up the current scene, plus the
// current selection. One Document lives per session and is handed to
// whoever needs it; there is no package-level instance.
//
// The physics tick and the command handlers run on different goroutines,
// so all access goes through the mutex.
type Document struct {
	mu       sync.RWMutex
	bodies   map[string]Body
	order    []string
	selected string
	version  uint64
}

func NewDocument() *Document {
	return &Document{bodies: make(map[string]Body)}
}

// Clear removes every body and drops the selection.
func (d *Document) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bodies = make(map[string]Body)
	d.order = nil
	d.selected = ""
	d.version++
}

// Replace swaps the whole content for bodies. Bodies without an ID get one.
// The selection is dropped; nothing from the previous content survives.
func (d *Document) Replace(bodies []Body) {
	next := make(map[string]Body, len(bodies))
	order := make([]string, 0, len(bodies))
	for _, b := range bodies {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		if _, dup := next[b.ID]; !dup {
			order = append(order, b.ID)
		}
		next[b.ID] = b
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.bodies = next
	d.order = order
	d.selected = ""
	d.version++
}

func (d *Document) Add(b Body) (Body, error) {
	if !b.IsValid() {
		return Body{}, fmt.Errorf("add %q: %w", b.Name, ErrInvalid)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.bodies[b.ID]; !ok {
		d.order = append(d.order, b.ID)
	}
	d.bodies[b.ID] = b
	d.version++
	return b, nil
}

func (d *Document) Update(b Body) error {
	if !b.IsValid() {
		return fmt.Errorf("update %q: %w", b.Name, ErrInvalid)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.bodies[b.ID]; !ok {
		return fmt.Errorf("update %s: %w", b.ID, ErrNotFound)
	}
	d.bodies[b.ID] = b
	d.version++
	return nil
}

func (d *Document) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.bodies[id]; !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	delete(d.bodies, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if d.selected == id {
		d.selected = ""
	}
	d.version++
	return nil
}

func (d *Document) Get(id string) (Body, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.bodies[id]
	return b, ok
}

// Bodies returns a copy of the content in insertion order.
func (d *Document) Bodies() []Body {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Body, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.bodies[id])
	}
	return out
}

func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.bodies)
}

// Version increases on every edit (add, update, remove, clear, replace).
func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func (d *Document) Select(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == "" {
		d.selected = ""
		return nil
	}
	if _, ok := d.bodies[id]; !ok {
		return fmt.Errorf("select %s: %w", id, ErrNotFound)
	}
	d.selected = id
	return nil
}

// Selected returns the selected body, or nil when nothing is selected.
func (d *Document) Selected() *Body {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selected == "" {
		return nil
	}
	b := d.bodies[d.selected]
	return &b
}

// Mutate applies fn to every body under a single write lock. It is the hook
// the integrator uses; fn must not call back into the Document. version is
// the document version the bodies belong to. Mutate does not bump it, so
// integration steps are not mistaken for edits.
func (d *Document) Mutate(fn func(bodies []Body, version uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	bodies := make([]Body, len(d.order))
	for i, id := range d.order {
		bodies[i] = d.bodies[id]
	}
	fn(bodies, d.version)
	for _, b := range bodies {
		d.bodies[b.ID] = b
	}
}
