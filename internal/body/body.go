package body

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	DefaultMass   = 1.0
	DefaultRadius = 0.1
	DefaultColor  = "#ffffff"
)

// Body is a point mass in the plane. The controller never looks inside it.
type Body struct {
	ID     string
	Name   string
	Mass   float64
	Radius float64
	X, Y   float64
	VX, VY float64
	Color  string
}

// New returns a body with a fresh ID and default mass, radius and color.
func New(name string, x, y, vx, vy float64) Body {
	return Body{
		ID:     uuid.NewString(),
		Name:   name,
		Mass:   DefaultMass,
		Radius: DefaultRadius,
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Color:  DefaultColor,
	}
}

func (b Body) Speed() float64 { return math.Hypot(b.VX, b.VY) }

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * (b.VX*b.VX + b.VY*b.VY)
}

func (b Body) IsValid() bool {
	for _, v := range []float64{b.Mass, b.Radius, b.X, b.Y, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Mass > 0 && b.Radius >= 0
}

func (b Body) String() string {
	name := b.Name
	if name == "" {
		name = shortID(b.ID)
	}
	return fmt.Sprintf("%s m=%.3g (%.2f, %.2f)", name, b.Mass, b.X, b.Y)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
