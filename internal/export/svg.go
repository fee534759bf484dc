package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/gravsandbox/internal/body"
)

// Point is one sampled position of a body.
type Point struct{ X, Y float64 }

// Tracks maps a body ID to its sampled positions, oldest first.
type Tracks map[string][]Point

// Record appends the current position of every body.
func (t Tracks) Record(bodies []body.Body) {
	for _, b := range bodies {
		t[b.ID] = append(t[b.ID], Point{b.X, b.Y})
	}
}

type bounds struct{ minX, maxX, minY, maxY float64 }

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

// SystemToSVG writes the bodies, and their tracks when given, as an SVG
// image of width x height pixels. World +y points up.
func SystemToSVG(w io.Writer, bodies []body.Body, tracks Tracks, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	bb := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, b := range bodies {
		bb.add(b.X-b.Radius, b.Y-b.Radius)
		bb.add(b.X+b.Radius, b.Y+b.Radius)
	}
	for _, pts := range tracks {
		for _, p := range pts {
			bb.add(p.X, p.Y)
		}
	}
	if math.IsInf(bb.minX, 1) {
		bb = bounds{-1, 1, -1, 1}
	}

	// Add padding
	rangeX := bb.maxX - bb.minX
	rangeY := bb.maxY - bb.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	bb.minX -= rangeX * 0.1
	bb.minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	// Uniform scale keeps orbits round.
	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)
	px := func(x float64) float64 { return (x - bb.minX) * scale }
	py := func(y float64) float64 { return float64(height) - (y-bb.minY)*scale }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, b := range bodies {
		pts := tracks[b.ID]
		if len(pts) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1" d="M`, colorOf(b))
		for i, p := range pts {
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", px(p.X), py(p.Y))
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px(p.X), py(p.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, b := range bodies {
		r := math.Max(b.Radius*scale, 1.5)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>
`, px(b.X), py(b.Y), r, colorOf(b), escape(b.Name))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func colorOf(b body.Body) string {
	if b.Color == "" {
		return body.DefaultColor
	}
	return escape(b.Color)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
