package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/gravsandbox/internal/body"
	"github.com/san-kum/gravsandbox/internal/viz"
)

type modal struct {
	req modalRequest

	// file
	path     textinput.Model
	picker   filepicker.Model
	onPicker bool

	// body form
	fields []textinput.Model
	focus  int
	err    string

	// remove
	cursor  int
	confirm bool
}

var formLabels = []string{"Name", "Mass", "Radius", "X", "Y", "VX", "VY"}

func newModal(req modalRequest, startDir string) (*modal, tea.Cmd) {
	md := &modal{req: req}
	switch req.kind {
	case modalFile:
		return md, md.initFile(startDir)
	case modalBodyForm:
		return md, md.initForm()
	case modalRemove:
		for i, b := range req.bodies {
			if b.ID == req.selected {
				md.cursor = i
			}
		}
	}
	return md, nil
}

func (md *modal) initFile(startDir string) tea.Cmd {
	md.path = textinput.New()
	md.path.Prompt = "File: "
	md.path.Placeholder = "scene." + md.req.filter.Extension
	md.path.CharLimit = 512
	md.path.Width = 48

	fp := filepicker.New()
	fp.AllowedTypes = []string{"." + md.req.filter.Extension}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}
	fp.CurrentDirectory = startDir
	md.picker = fp

	return tea.Batch(md.path.Focus(), md.picker.Init())
}

func (md *modal) initForm() tea.Cmd {
	var values []string
	if b := md.req.body; b != nil {
		values = []string{
			b.Name,
			formatFloat(b.Mass),
			formatFloat(b.Radius),
			formatFloat(b.X),
			formatFloat(b.Y),
			formatFloat(b.VX),
			formatFloat(b.VY),
		}
	} else {
		values = []string{"", formatFloat(body.DefaultMass), formatFloat(body.DefaultRadius), "0", "0", "0", "0"}
	}

	md.fields = make([]textinput.Model, len(formLabels))
	for i, label := range formLabels {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-7s", label+":")
		ti.CharLimit = 64
		ti.Width = 24
		ti.SetValue(values[i])
		md.fields[i] = ti
	}
	return md.fields[0].Focus()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formBody validates the form and builds the body it describes.
func (md *modal) formBody() (body.Body, error) {
	name := strings.TrimSpace(md.fields[0].Value())
	if name == "" {
		return body.Body{}, fmt.Errorf("name is required")
	}

	nums := make([]float64, len(formLabels)-1)
	for i := 1; i < len(formLabels); i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(md.fields[i].Value()), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return body.Body{}, fmt.Errorf("%s must be a number", strings.ToLower(formLabels[i]))
		}
		nums[i-1] = v
	}
	mass, radius := nums[0], nums[1]
	if mass <= 0 {
		return body.Body{}, fmt.Errorf("mass must be positive")
	}
	if radius < 0 {
		return body.Body{}, fmt.Errorf("radius must not be negative")
	}

	var b body.Body
	if md.req.body != nil {
		b = *md.req.body
		b.Name = name
		b.X, b.Y, b.VX, b.VY = nums[2], nums[3], nums[4], nums[5]
	} else {
		b = body.New(name, nums[2], nums[3], nums[4], nums[5])
	}
	b.Mass = mass
	b.Radius = radius
	return b, nil
}

// update handles msg while the modal is up. done reports that the modal
// has answered and should close.
func (md *modal) update(msg tea.Msg) (res modalResult, done bool, cmd tea.Cmd) {
	switch md.req.kind {
	case modalFile:
		return md.updateFile(msg)
	case modalBodyForm:
		return md.updateForm(msg)
	case modalRemove:
		return md.updateRemove(msg)
	case modalError:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "enter", "esc", " ", "space":
				return modalResult{ok: true}, true, nil
			}
		}
	}
	return modalResult{}, false, nil
}

func (md *modal) updateFile(msg tea.Msg) (modalResult, bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return modalResult{}, true, nil
		case "tab", "shift+tab":
			md.onPicker = !md.onPicker
			if md.onPicker {
				md.path.Blur()
				return modalResult{}, false, nil
			}
			return modalResult{}, false, md.path.Focus()
		case "enter":
			if !md.onPicker {
				p := strings.TrimSpace(md.path.Value())
				if p == "" {
					return modalResult{}, false, nil
				}
				return modalResult{ok: true, path: md.resolve(p)}, true, nil
			}
		}
		if !md.onPicker {
			var cmd tea.Cmd
			md.path, cmd = md.path.Update(msg)
			return modalResult{}, false, cmd
		}
	}

	var pathCmd, pickCmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		md.path, pathCmd = md.path.Update(msg)
	}
	md.picker, pickCmd = md.picker.Update(msg)
	if selected, path := md.picker.DidSelectFile(msg); selected {
		return modalResult{ok: true, path: path}, true, nil
	}
	return modalResult{}, false, tea.Batch(pathCmd, pickCmd)
}

// resolve makes a typed path absolute against the picker's directory.
func (md *modal) resolve(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(md.picker.CurrentDirectory, p)
	}
	return filepath.Clean(p)
}

func (md *modal) updateForm(msg tea.Msg) (modalResult, bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return modalResult{}, true, nil
		case "tab", "down":
			return modalResult{}, false, md.focusField(md.focus + 1)
		case "shift+tab", "up":
			return modalResult{}, false, md.focusField(md.focus - 1)
		case "enter", "ctrl+s":
			if k.String() == "enter" && md.focus < len(md.fields)-1 {
				return modalResult{}, false, md.focusField(md.focus + 1)
			}
			b, err := md.formBody()
			if err != nil {
				md.err = err.Error()
				return modalResult{}, false, nil
			}
			return modalResult{ok: true, body: b}, true, nil
		}
	}

	var cmd tea.Cmd
	md.fields[md.focus], cmd = md.fields[md.focus].Update(msg)
	return modalResult{}, false, cmd
}

func (md *modal) focusField(i int) tea.Cmd {
	n := len(md.fields)
	i = (i%n + n) % n
	md.fields[md.focus].Blur()
	md.focus = i
	return md.fields[i].Focus()
}

func (md *modal) updateRemove(msg tea.Msg) (modalResult, bool, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return modalResult{}, false, nil
	}

	if md.confirm {
		switch k.String() {
		case "y", "Y", "enter":
			return modalResult{ok: true, id: md.req.bodies[md.cursor].ID}, true, nil
		case "n", "N", "esc":
			md.confirm = false
		}
		return modalResult{}, false, nil
	}

	switch k.String() {
	case "esc":
		return modalResult{}, true, nil
	case "up", "k":
		if md.cursor > 0 {
			md.cursor--
		}
	case "down", "j":
		if md.cursor < len(md.req.bodies)-1 {
			md.cursor++
		}
	case "enter":
		md.confirm = true
	}
	return modalResult{}, false, nil
}

func (md *modal) view(st viz.Styles, width int) string {
	var b strings.Builder

	switch md.req.kind {
	case modalError:
		b.WriteString(st.ErrorTitle.Render(md.req.title))
		b.WriteString("\n")
		b.WriteString(md.req.message)
		b.WriteString("\n\n")
		b.WriteString(st.KeyHint.Render("enter: ok"))
		return st.ErrorModal.MaxWidth(width).Render(b.String())

	case modalFile:
		b.WriteString(st.ModalTitle.Render(md.req.title))
		b.WriteString("\n")
		b.WriteString(st.Subtle.Render(fmt.Sprintf("%s (*.%s)  %s", md.req.filter.Description, md.req.filter.Extension, md.picker.CurrentDirectory)))
		b.WriteString("\n")
		b.WriteString(md.path.View())
		b.WriteString("\n\n")
		b.WriteString(md.picker.View())
		b.WriteString("\n")
		hint := "tab: browse  enter: confirm  esc: cancel"
		if md.onPicker {
			hint = "tab: type a path  enter: choose  esc: cancel"
		}
		b.WriteString(st.KeyHint.Render(hint))

	case modalBodyForm:
		b.WriteString(st.ModalTitle.Render(md.req.title))
		b.WriteString("\n")
		for _, f := range md.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
		if md.err != "" {
			b.WriteString(st.FormError.Render(md.err))
			b.WriteString("\n")
		}
		b.WriteString(st.KeyHint.Render("tab: next field  ctrl+s: save  esc: cancel"))

	case modalRemove:
		b.WriteString(st.ModalTitle.Render(md.req.title))
		b.WriteString("\n")
		for i, bd := range md.req.bodies {
			line := "  " + bd.String()
			if i == md.cursor {
				line = st.ListCursor.Render("> " + bd.String())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if md.confirm {
			b.WriteString(st.FormError.Render(fmt.Sprintf("Remove %s? (y/n)", md.req.bodies[md.cursor].Name)))
		} else {
			b.WriteString(st.KeyHint.Render("enter: remove  esc: cancel"))
		}
	}

	return st.Modal.MaxWidth(width).Render(b.String())
}

// center places s in the middle of a w x h area.
func center(s string, w, h int) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, s)
}
