package config

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/physics"
)

// ErrUnknownPreset indicates a preset name with no scene behind it.
var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]func(g float64) []body.Body{
	"binary":  binaryScene,
	"solar":   solarScene,
	"figure8": figure8Scene,
	"random":  func(g float64) []body.Body { return randomScene(g, 8, 1) },
}

func GetPreset(name string, g float64) ([]body.Body, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return fn(g), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func binaryScene(g float64) []body.Body {
	a := body.New("alpha", -1, 0, 0, 0)
	b := body.New("beta", 1, 0, 0, 0)
	a.VX, a.VY = physics.CircularVelocity(g, b.Mass/4, 0, 0, a.X, a.Y)
	b.VX, b.VY = physics.CircularVelocity(g, a.Mass/4, 0, 0, b.X, b.Y)
	a.Color = "#00ccff"
	b.Color = "#ffaa00"
	return []body.Body{a, b}
}

func solarScene(g float64) []body.Body {
	sun := body.New("sun", 0, 0, 0, 0)
	sun.Mass = 1000
	sun.Radius = 0.5
	sun.Color = "#ffcc00"

	scene := []body.Body{sun}
	planets := []struct {
		name  string
		r     float64
		mass  float64
		color string
	}{
		{"mercury", 2, 0.05, "#aaaaaa"},
		{"venus", 3.5, 0.8, "#ffddaa"},
		{"earth", 5, 1, "#00ccff"},
		{"mars", 7, 0.1, "#ff4444"},
	}
	for _, p := range planets {
		b := body.New(p.name, p.r, 0, 0, 0)
		b.Mass = p.mass
		b.Color = p.color
		b.VX, b.VY = physics.CircularVelocity(g, sun.Mass, 0, 0, b.X, b.Y)
		scene = append(scene, b)
	}
	return scene
}

// figure8Scene is the Chenciner-Montgomery three-body choreography, scaled
// for the given G.
func figure8Scene(g float64) []body.Body {
	s := 1 / math.Sqrt(g)
	a := body.New("one", 0.97000436, -0.24308753, 0.466203685*s, 0.43236573*s)
	b := body.New("two", -0.97000436, 0.24308753, 0.466203685*s, 0.43236573*s)
	c := body.New("three", 0, 0, -0.93240737*s, -0.86473146*s)
	return []body.Body{a, b, c}
}

func randomScene(g float64, n int, seed int64) []body.Body {
	rng := rand.New(rand.NewSource(seed))
	center := body.New("core", 0, 0, 0, 0)
	center.Mass = 100
	scene := []body.Body{center}
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		r := 1.5 + rng.Float64()*6
		b := body.New(fmt.Sprintf("rock-%d", i+1), r*math.Cos(angle), r*math.Sin(angle), 0, 0)
		b.Mass = 0.01 + rng.Float64()*0.5
		b.VX, b.VY = physics.CircularVelocity(g, center.Mass, 0, 0, b.X, b.Y)
		scene = append(scene, b)
	}
	return scene
}
