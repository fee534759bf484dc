package viz

import "math"

// Viewport maps world coordinates onto canvas sub-pixels. Scale is
// sub-pixels per world unit; the centre of the world view sits in the
// middle of the canvas. World y grows upwards.
type Viewport struct {
	CenterX, CenterY float64
	Scale            float64
}

func (v Viewport) Project(c *Canvas, x, y float64) (int, int) {
	px := float64(c.Width) + (x-v.CenterX)*v.Scale
	py := float64(c.Height*2) - (y-v.CenterY)*v.Scale
	return int(math.Round(px)), int(math.Round(py))
}

// Radius converts a world length to whole sub-pixels.
func (v Viewport) Radius(r float64) int {
	return int(r * v.Scale)
}

// Zoom multiplies the scale by f, clamped to a sane range.
func (v *Viewport) Zoom(f float64) {
	v.Scale = math.Min(math.Max(v.Scale*f, 0.05), 500)
}
