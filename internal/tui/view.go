package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/san-kum/gravsandbox/internal/menu"
	"github.com/san-kum/gravsandbox/internal/viz"
)

const (
	sideWidth   = 32
	graphHeight = 4
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.modal != nil {
		return center(m.modal.view(m.styles, m.width-4), m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderMenuBar())
	b.WriteString("\n")
	if m.menuOpen {
		b.WriteString(m.renderDropdown())
		b.WriteString("\n")
	}

	canvasW := max(m.width-sideWidth-4, 10)
	canvasH := max(m.height-graphHeight-8, 5)
	scene := m.styles.Panel.Render(m.renderScene(canvasW, canvasH))
	side := m.styles.Panel.Width(sideWidth - 2).Height(canvasH).Render(m.renderSide())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, scene, side))
	b.WriteString("\n")

	b.WriteString(viz.EnergyGraph(m.engine.History(), max(m.width-12, 10), graphHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderMenuBar() string {
	var parts []string
	for i, mn := range m.ctrl.Menus() {
		if m.menuOpen && i == m.menuIdx {
			parts = append(parts, m.styles.MenuActive.Render(mn.Title))
		} else {
			parts = append(parts, m.styles.MenuTitle.Render(mn.Title))
		}
	}
	bar := strings.Join(parts, "")
	hint := m.styles.KeyHint.Render("  F10/m: menu  :: command")
	return m.styles.MenuBar.Width(m.width).Render(bar + hint)
}

// menuOffset is the column where the title of menu i starts.
func (m Model) menuOffset(i int) int {
	off := 0
	for k, mn := range m.ctrl.Menus() {
		if k == i {
			break
		}
		off += lipgloss.Width(m.styles.MenuTitle.Render(mn.Title))
	}
	return off
}

func (m Model) renderDropdown() string {
	mn := m.ctrl.Menus()[m.menuIdx]
	var lines []string
	for i, it := range mn.Items {
		if it.Separator {
			lines = append(lines, m.styles.Subtle.Render(strings.Repeat("─", 20)))
			continue
		}
		lines = append(lines, m.renderItem(it.Command, i == m.itemIdx))
	}
	box := m.styles.MenuDropdown.Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().MarginLeft(m.menuOffset(m.menuIdx)).Render(box)
}

func (m Model) renderItem(id menu.CommandID, selected bool) string {
	cmd, _ := m.ctrl.Command(id)
	label := fmt.Sprintf("%-18s", m.ctrl.Label(id))
	key := m.styles.KeyHint.Render(cmd.Key)
	switch {
	case !m.ctrl.Enabled(id):
		return m.styles.MenuDisabled.Render("  "+label) + " " + key
	case selected:
		return m.styles.MenuSelected.Render("> "+label) + " " + key
	default:
		return m.styles.MenuItem.Render("  "+label) + " " + key
	}
}

func (m Model) renderScene(w, h int) string {
	c := viz.NewCanvas(w, h)
	vp := m.viewport

	for _, t := range m.trails {
		for i := 1; i < len(t); i++ {
			x0, y0 := vp.Project(c, t[i-1].x, t[i-1].y)
			x1, y1 := vp.Project(c, t[i].x, t[i].y)
			c.Line(x0, y0, x1, y1)
		}
	}
	for _, b := range m.doc.Bodies() {
		x, y := vp.Project(c, b.X, b.Y)
		c.Disc(x, y, vp.Radius(b.Radius))
	}

	out := strings.TrimRight(c.String(), "\n")
	if m.doc.Len() == 0 {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			m.styles.Subtle.Render("empty system: press a to add a body, o to open a file"))
	}
	return out
}

func (m Model) renderSide() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Bodies"))
	b.WriteString("\n")

	bodies := m.doc.Bodies()
	sel := m.doc.Selected()
	for i, bd := range bodies {
		name := truncateName(bd.Name)
		line := fmt.Sprintf("  %s", name)
		if sel != nil && bd.ID == sel.ID {
			line = m.styles.ListCursor.Render("> " + name)
		} else if i == m.cursor && sel == nil {
			line = m.styles.Subtle.Render("· " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(bodies) == 0 {
		b.WriteString(m.styles.Subtle.Render("  (none)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if sel != nil {
		b.WriteString(m.metric("mass", fmt.Sprintf("%.4g", sel.Mass)))
		b.WriteString(m.metric("pos", fmt.Sprintf("%.2f, %.2f", sel.X, sel.Y)))
		b.WriteString(m.metric("speed", fmt.Sprintf("%.3f", sel.Speed())))
	}
	b.WriteString(m.metric("t", fmt.Sprintf("%.3f", m.engine.Time())))
	b.WriteString(m.metric("steps", fmt.Sprintf("%d", m.engine.Steps())))
	b.WriteString(m.metric("drift", fmt.Sprintf("%.2e", m.engine.Drift())))
	b.WriteString(m.metric("zoom", fmt.Sprintf("%.2f", m.viewport.Scale)))
	return b.String()
}

// truncateName cuts a body name to the side panel by display width.
func truncateName(name string) string {
	return ansi.Truncate(name, sideWidth-8, "…")
}

func (m Model) metric(label, value string) string {
	return m.styles.MetricLabel.Render(fmt.Sprintf("%-6s", label)) + " " + m.styles.MetricValue.Render(value) + "\n"
}

func (m Model) renderStatus() string {
	if m.cmdlineOn {
		return m.cmdline.View()
	}

	state := m.styles.Stopped.Render("STOPPED")
	if m.host.IsSimulationRunning() {
		state = m.styles.Running.Render("RUNNING")
	}
	line := state + "  " + m.styles.KeyHint.Render("n new  o open  s save  a add  e edit  x remove  space start/stop  q exit")
	if m.status != "" {
		line += "\n" + m.styles.FormError.Render(m.status)
	}
	return line
}
