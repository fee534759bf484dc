package physics

import (
	"math"

	"github.com/san-kum/gravsandbox/internal/body"
)

const (
	DefaultG         = 1.0
	DefaultSoftening = 0.01
)

// Gravity computes pairwise softened Newtonian accelerations.
type Gravity struct {
	G         float64
	Softening float64

	ax, ay []float64
}

func NewGravity(g, softening float64) *Gravity {
	if g <= 0 {
		g = DefaultG
	}
	if softening < 0 {
		softening = DefaultSoftening
	}
	return &Gravity{G: g, Softening: softening}
}

func (g *Gravity) ensureScratch(n int) {
	if len(g.ax) != n {
		g.ax = make([]float64, n)
		g.ay = make([]float64, n)
	}
}

// Accelerations fills the scratch buffers for bodies and returns them.
// The slices are reused across calls.
func (g *Gravity) Accelerations(bodies []body.Body) ([]float64, []float64) {
	n := len(bodies)
	g.ensureScratch(n)
	for i := range g.ax {
		g.ax[i] = 0
		g.ay[i] = 0
	}
	eps2 := g.Softening * g.Softening

	for i := 0; i < n; i++ {
		xi, yi := bodies[i].X, bodies[i].Y

		for j := i + 1; j < n; j++ {
			rx := bodies[j].X - xi
			ry := bodies[j].Y - yi
			r2 := rx*rx + ry*ry + eps2
			if r2 == 0 {
				continue
			}

			rInv := 1.0 / math.Sqrt(r2)
			r3Inv := rInv * rInv * rInv

			fij := g.G * bodies[j].Mass * r3Inv
			g.ax[i] += fij * rx
			g.ay[i] += fij * ry

			fji := g.G * bodies[i].Mass * r3Inv
			g.ax[j] -= fji * rx
			g.ay[j] -= fji * ry
		}
	}

	return g.ax, g.ay
}

// Step advances bodies in place by dt with velocity Verlet.
func (g *Gravity) Step(bodies []body.Body, dt float64) {
	n := len(bodies)
	if n == 0 {
		return
	}

	ax, ay := g.Accelerations(bodies)
	halfDt := 0.5 * dt
	for i := range bodies {
		bodies[i].VX += ax[i] * halfDt
		bodies[i].VY += ay[i] * halfDt
		bodies[i].X += bodies[i].VX * dt
		bodies[i].Y += bodies[i].VY * dt
	}

	ax, ay = g.Accelerations(bodies)
	for i := range bodies {
		bodies[i].VX += ax[i] * halfDt
		bodies[i].VY += ay[i] * halfDt
	}
}

func (g *Gravity) Energy(bodies []body.Body) float64 {
	ke := 0.0
	pe := 0.0
	eps2 := g.Softening * g.Softening

	for i := range bodies {
		ke += bodies[i].KineticEnergy()

		for j := i + 1; j < len(bodies); j++ {
			rx := bodies[j].X - bodies[i].X
			ry := bodies[j].Y - bodies[i].Y
			r := math.Sqrt(rx*rx + ry*ry + eps2)
			if r == 0 {
				continue
			}
			pe -= g.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}

	return ke + pe
}

func Momentum(bodies []body.Body) (px, py float64) {
	for _, b := range bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
	}
	return
}

func AngularMomentum(bodies []body.Body) float64 {
	L := 0.0
	for _, b := range bodies {
		L += b.Mass * (b.X*b.VY - b.Y*b.VX)
	}
	return L
}

// CircularVelocity returns the velocity a body at (x, y) needs for a
// circular orbit around a central mass at (cx, cy).
func CircularVelocity(g, centralMass, cx, cy, x, y float64) (vx, vy float64) {
	dx := x - cx
	dy := y - cy
	r := math.Hypot(dx, dy)
	if r == 0 {
		return 0, 0
	}
	v := math.Sqrt(g * centralMass / r)
	return -dy / r * v, dx / r * v
}
