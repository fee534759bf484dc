package physics

import (
	"github.com/san-kum/gravsandbox/internal/body"
)

const DefaultHistory = 200

// Engine steps a document and keeps running telemetry for the view.
type Engine struct {
	Gravity      *Gravity
	Dt           float64
	StepsPerTick int

	time          float64
	steps         int
	initialEnergy float64
	haveInitial   bool
	docVersion    uint64
	history       []float64
	maxHistory    int
}

func NewEngine(g *Gravity, dt float64, stepsPerTick int) *Engine {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return &Engine{
		Gravity:      g,
		Dt:           dt,
		StepsPerTick: stepsPerTick,
		history:      make([]float64, 0, DefaultHistory),
		maxHistory:   DefaultHistory,
	}
}

// Tick advances doc by StepsPerTick steps under one document lock.
func (e *Engine) Tick(doc *body.Document) {
	var energy float64
	doc.Mutate(func(bodies []body.Body, version uint64) {
		// An edit since the last tick makes it a different system: drift
		// and the energy history start over from it.
		if !e.haveInitial || version != e.docVersion {
			e.initialEnergy = e.Gravity.Energy(bodies)
			e.haveInitial = true
			e.docVersion = version
			e.history = e.history[:0]
		}
		for i := 0; i < e.StepsPerTick; i++ {
			e.Gravity.Step(bodies, e.Dt)
		}
		energy = e.Gravity.Energy(bodies)
	})
	e.time += e.Dt * float64(e.StepsPerTick)
	e.steps += e.StepsPerTick
	e.record(energy)
}

func (e *Engine) record(energy float64) {
	if len(e.history) >= e.maxHistory {
		e.history = e.history[1:]
	}
	e.history = append(e.history, energy)
}

// Reset forgets the clock and telemetry; used when the document is replaced.
func (e *Engine) Reset() {
	e.time = 0
	e.steps = 0
	e.haveInitial = false
	e.history = e.history[:0]
}

func (e *Engine) Time() float64 { return e.time }
func (e *Engine) Steps() int    { return e.steps }

// History returns a copy of the recorded energy samples.
func (e *Engine) History() []float64 {
	out := make([]float64, len(e.history))
	copy(out, e.history)
	return out
}

// Drift is the relative energy error since the first tick after the last
// edit of the document.
func (e *Engine) Drift() float64 {
	if !e.haveInitial || len(e.history) == 0 || e.initialEnergy == 0 {
		return 0
	}
	last := e.history[len(e.history)-1]
	d := (last - e.initialEnergy) / e.initialEnergy
	if d < 0 {
		return -d
	}
	return d
}
