package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boarding-gate/internal/core"
)

// Menu copy.
const (
	menuTitle       = "Boarding Ready?"
	menuSubtitle    = "Set your preferences and start the next shift."
	namePlaceholder = "Your name"
	endlessLabel    = "Endless (coming soon)"
	startLabel      = "Start"
	nameRequired    = "Please enter your name."
	nameCharLimit   = 32
)

// menuField is a focusable control of the menu form.
// The endless checkbox is disabled and never takes focus.
type menuField int

const (
	fieldName menuField = iota
	fieldMode
	fieldSize
	fieldStart
	fieldCount
)

// menuForm holds the state of the settings form.
type menuForm struct {
	name  textinput.Model
	mode  core.GameMode
	size  core.UISizePreset
	focus menuField
	err   string
}

// formEvent reports what a key press did to the form.
type formEvent int

const (
	formNone    formEvent = iota
	formChanged           // a field value changed and should be saved
	formSubmit            // Start was pressed with a valid form
)

func newMenuForm(s core.GameSettings) *menuForm {
	s = s.Normalize()

	ti := textinput.New()
	ti.Placeholder = namePlaceholder
	ti.CharLimit = nameCharLimit
	ti.Prompt = ""
	ti.SetValue(s.Name)

	f := &menuForm{
		name: ti,
		mode: s.Mode,
		size: s.UISize,
	}
	f.setFocus(fieldName)
	return f
}

// Settings returns the current form values. The name is trimmed.
func (f *menuForm) Settings() core.GameSettings {
	return core.GameSettings{
		Name:   strings.TrimSpace(f.name.Value()),
		Mode:   f.mode,
		UISize: f.size,
	}
}

func (f *menuForm) setFocus(field menuField) {
	f.focus = field
	if field == fieldName {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
}

func (f *menuForm) moveFocus(delta int) {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	f.setFocus(menuField(next))
}

// validate reports whether the form can be submitted and sets the error line.
func (f *menuForm) validate() bool {
	if strings.TrimSpace(f.name.Value()) == "" {
		f.err = nameRequired
		f.setFocus(fieldName)
		return false
	}
	f.err = ""
	return true
}

// Update applies a key press to the form.
func (f *menuForm) Update(msg tea.KeyMsg, keys KeyMap) (formEvent, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		if f.focus == fieldStart || f.focus == fieldName {
			if f.validate() {
				return formSubmit, nil
			}
			return formNone, nil
		}
		f.moveFocus(1)
		return formNone, nil
	case key.Matches(msg, keys.Down):
		f.moveFocus(1)
		return formNone, nil
	case key.Matches(msg, keys.Up):
		f.moveFocus(-1)
		return formNone, nil
	}

	switch f.focus {
	case fieldName:
		before := f.name.Value()
		var cmd tea.Cmd
		f.name, cmd = f.name.Update(msg)
		if f.name.Value() != before {
			if strings.TrimSpace(f.name.Value()) != "" {
				f.err = ""
			}
			return formChanged, cmd
		}
		return formNone, cmd
	case fieldMode:
		if d := direction(msg, keys); d != 0 {
			f.mode = cycle(core.Modes(), f.mode, d)
			return formChanged, nil
		}
	case fieldSize:
		if d := direction(msg, keys); d != 0 {
			f.size = cycle(core.UISizes(), f.size, d)
			return formChanged, nil
		}
	}
	return formNone, nil
}

// direction maps left/right to -1/+1.
func direction(msg tea.KeyMsg, keys KeyMap) int {
	switch {
	case key.Matches(msg, keys.Left):
		return -1
	case key.Matches(msg, keys.Right):
		return 1
	}
	return 0
}

// cycle returns the neighbour of cur in values, wrapping around.
func cycle[T comparable](values []T, cur T, delta int) T {
	idx := 0
	for i, v := range values {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

// View renders the form.
func (f *menuForm) View(theme GateTheme) string {
	theme = theme.ForSize(f.size)

	var b strings.Builder
	b.WriteString(theme.Title.Render(menuTitle))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(menuSubtitle))
	b.WriteString("\n\n")

	b.WriteString(f.label(theme, "Name", fieldName))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(theme.Error.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(f.label(theme, "Mode", fieldMode))
	b.WriteString("\n")
	b.WriteString(radioRow(theme, core.Modes(), f.mode))
	b.WriteString("\n\n")

	b.WriteString(theme.Disabled.Render("[ ] " + endlessLabel))
	b.WriteString("\n\n")

	b.WriteString(f.label(theme, "UI size", fieldSize))
	b.WriteString("\n")
	b.WriteString(radioRow(theme, core.UISizes(), f.size))
	b.WriteString("\n\n")

	button := theme.Button
	if f.focus == fieldStart {
		button = theme.ButtonFocused
	}
	b.WriteString(button.Render(startLabel))

	return theme.Panel.Render(b.String())
}

func (f *menuForm) label(theme GateTheme, text string, field menuField) string {
	if f.focus == field {
		return theme.OptionFocused.Render("> " + text)
	}
	return theme.Label.Render("  " + text)
}

func radioRow[T ~string](theme GateTheme, values []T, selected T) string {
	cells := make([]string, 0, len(values))
	for _, v := range values {
		if v == selected {
			cells = append(cells, theme.OptionActive.Render("(*) "+string(v)))
		} else {
			cells = append(cells, theme.Option.Render("( ) "+string(v)))
		}
	}
	return strings.Join(cells, " ")
}
