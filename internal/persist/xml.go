package persist

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/san-kum/gravsandbox/internal/body"
)

type xmlSystem struct {
	XMLName xml.Name  `xml:"system"`
	Bodies  []xmlBody `xml:"body"`
}

type xmlBody struct {
	ID       string   `xml:"id,attr,omitempty"`
	Name     string   `xml:"name,attr"`
	Mass     float64  `xml:"mass,attr"`
	Radius   *float64 `xml:"radius,attr,omitempty"`
	Color    string   `xml:"color,attr,omitempty"`
	Position xmlVec   `xml:"position"`
	Velocity xmlVec   `xml:"velocity"`
}

type xmlVec struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

func Decode(r io.Reader) ([]body.Body, error) {
	var sys xmlSystem
	if err := xml.NewDecoder(r).Decode(&sys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	bodies := make([]body.Body, 0, len(sys.Bodies))
	for i, xb := range sys.Bodies {
		b := body.Body{
			ID:     xb.ID,
			Name:   xb.Name,
			Mass:   xb.Mass,
			Radius: body.DefaultRadius,
			Color:  xb.Color,
			X:      xb.Position.X,
			Y:      xb.Position.Y,
			VX:     xb.Velocity.X,
			VY:     xb.Velocity.Y,
		}
		// only a missing attribute falls back; radius 0 is a point mass
		if xb.Radius != nil {
			b.Radius = *xb.Radius
		}
		if b.Color == "" {
			b.Color = body.DefaultColor
		}
		if !b.IsValid() {
			return nil, fmt.Errorf("%w: body %d (%q) has invalid values", ErrMalformed, i, b.Name)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func Encode(w io.Writer, bodies []body.Body) error {
	sys := xmlSystem{Bodies: make([]xmlBody, 0, len(bodies))}
	for _, b := range bodies {
		radius := b.Radius
		sys.Bodies = append(sys.Bodies, xmlBody{
			ID:       b.ID,
			Name:     b.Name,
			Mass:     b.Mass,
			Radius:   &radius,
			Color:    b.Color,
			Position: xmlVec{X: b.X, Y: b.Y},
			Velocity: xmlVec{X: b.VX, Y: b.VY},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(sys); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
