// Package term renders dialog forms in the controlling terminal. It is
// the built-in surface: a bubbletea program that displays the component
// tree and reports edits, picks, and the final submit as surface
// events.
package term

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"assistant"
	"assistant/render"
	"assistant/surface"
)

type componentsMsg []render.Component

type loadingMsg struct{}

// emitter delivers user intent out of the bubbletea loop.
type emitter interface {
	emit(surface.Event)
}

type formModel struct {
	th    theme
	out   emitter
	title string

	width  int
	height int

	loading bool
	comps   []render.Component

	focus     int // index into comps, -1 while nothing is focusable
	buttonIdx int // selected button within the submit row
}

func newFormModel(title string, out emitter) formModel {
	return formModel{
		th:      defaultTheme(),
		out:     out,
		title:   title,
		loading: true,
		focus:   -1,
	}
}

func (m formModel) Init() tea.Cmd { return nil }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch t := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = t.Width
		m.height = t.Height
		return m, nil
	case loadingMsg:
		m.loading = true
		return m, nil
	case componentsMsg:
		return m.setComponents(t), nil
	case tea.KeyMsg:
		return m.handleKey(t)
	default:
		return m, nil
	}
}

func (m formModel) setComponents(comps []render.Component) formModel {
	first := m.comps == nil
	prevID := ""
	if m.focus >= 0 && m.focus < len(m.comps) {
		prevID = m.comps[m.focus].ID
	}

	m.comps = comps
	m.loading = false

	stops := m.focusables()
	if len(stops) == 0 {
		m.focus = -1
		return m
	}
	m.focus = stops[0]
	for _, i := range stops {
		if prevID != "" && m.comps[i].ID == prevID {
			m.focus = i
			break
		}
	}

	if row := m.submitRow(); row != nil {
		if first && row.Default != "" {
			for i, b := range row.Buttons {
				if b == row.Default {
					m.buttonIdx = i
				}
			}
		}
		if m.buttonIdx >= len(row.Buttons) {
			m.buttonIdx = 0
		}
	}
	return m
}

func (m formModel) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.Type == tea.KeyCtrlC || k.Type == tea.KeyEscape {
		m.out.emit(surface.Closed{})
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch k.Type {
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1), nil
	}

	c, ok := m.focused()
	if !ok {
		return m, nil
	}
	switch c.Kind {
	case render.ComponentTextField:
		return m.editText(c, k)
	case render.ComponentFilePicker:
		if k.Type == tea.KeyEnter && !c.FilePicker.Pending {
			m.out.emit(surface.PickFiles{Name: c.FilePicker.Name})
		}
	case render.ComponentSelect:
		return m.cycleOption(c.Select.Name, c.Select.Options, c.Select.Value, k), nil
	case render.ComponentRadioGroup:
		return m.cycleOption(c.RadioGroup.Name, c.RadioGroup.Options, c.RadioGroup.Value, k), nil
	case render.ComponentCheckbox:
		if k.Type == tea.KeySpace || k.Type == tea.KeyEnter {
			m.out.emit(surface.SetValue{Name: c.Checkbox.Name, Value: !c.Checkbox.Checked})
		}
	case render.ComponentLink:
		if k.Type == tea.KeyEnter || keyRune(k) == 'o' {
			m.out.emit(surface.OpenFile{Path: c.Link.URL})
		}
	case render.ComponentFile:
		if k.Type == tea.KeyEnter || keyRune(k) == 'o' {
			m.out.emit(surface.OpenFile{Path: c.File.Path})
		}
	case render.ComponentSubmitRow:
		switch k.Type {
		case tea.KeyLeft:
			m.buttonIdx = clamp(m.buttonIdx-1, 0, len(c.SubmitRow.Buttons)-1)
		case tea.KeyRight:
			m.buttonIdx = clamp(m.buttonIdx+1, 0, len(c.SubmitRow.Buttons)-1)
		case tea.KeyEnter:
			m.out.emit(surface.Submit{Button: c.SubmitRow.Buttons[m.buttonIdx]})
		}
	}
	return m, nil
}

func (m formModel) editText(c render.Component, k tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := c.TextField
	switch k.Type {
	case tea.KeyRunes:
		m.out.emit(surface.SetValue{Name: f.Name, Value: f.Value + string(k.Runes)})
	case tea.KeySpace:
		m.out.emit(surface.SetValue{Name: f.Name, Value: f.Value + " "})
	case tea.KeyBackspace:
		if f.Value != "" {
			runes := []rune(f.Value)
			m.out.emit(surface.SetValue{Name: f.Name, Value: string(runes[:len(runes)-1])})
		}
	case tea.KeyEnter:
		if f.Rows > 1 {
			m.out.emit(surface.SetValue{Name: f.Name, Value: f.Value + "\n"})
			return m, nil
		}
		if row := m.submitRow(); row != nil && row.Default != "" {
			m.out.emit(surface.Submit{Button: row.Default})
			return m, nil
		}
		return m.moveFocus(1), nil
	}
	return m, nil
}

func (m formModel) cycleOption(name string, options []string, value string, k tea.KeyMsg) formModel {
	if len(options) == 0 {
		return m
	}
	var delta int
	switch k.Type {
	case tea.KeyLeft:
		delta = -1
	case tea.KeyRight, tea.KeySpace:
		delta = 1
	default:
		return m
	}
	cur := -1
	for i, opt := range options {
		if opt == value {
			cur = i
			break
		}
	}
	next := (cur + delta + len(options) + 1) % (len(options) + 1)
	if next == len(options) {
		// Wrap through the unselected state so a default-less group can
		// be cleared again.
		m.out.emit(surface.SetValue{Name: name, Value: ""})
		return m
	}
	m.out.emit(surface.SetValue{Name: name, Value: options[next]})
	return m
}

func (m formModel) moveFocus(delta int) formModel {
	stops := m.focusables()
	if len(stops) == 0 {
		return m
	}
	cur := 0
	for i, s := range stops {
		if s == m.focus {
			cur = i
			break
		}
	}
	cur = (cur + delta + len(stops)) % len(stops)
	m.focus = stops[cur]
	return m
}

func (m formModel) focusables() []int {
	var stops []int
	for i, c := range m.comps {
		switch c.Kind {
		case render.ComponentTextField, render.ComponentFilePicker,
			render.ComponentSelect, render.ComponentRadioGroup,
			render.ComponentCheckbox, render.ComponentSubmitRow,
			render.ComponentLink, render.ComponentFile:
			stops = append(stops, i)
		}
	}
	return stops
}

func (m formModel) focused() (render.Component, bool) {
	if m.focus < 0 || m.focus >= len(m.comps) {
		return render.Component{}, false
	}
	return m.comps[m.focus], true
}

func (m formModel) submitRow() *render.SubmitRowState {
	for _, c := range m.comps {
		if c.Kind == render.ComponentSubmitRow {
			return c.SubmitRow
		}
	}
	return nil
}

func (m formModel) View() string {
	if m.loading {
		body := m.th.Muted.Render("Waiting for the host to stage the form...")
		if m.title != "" {
			body = m.th.HeadingLarge.Render(m.title) + "\n\n" + body
		}
		return m.frame().Render(body)
	}

	var lines []string
	if m.title != "" {
		lines = append(lines, m.th.HeadingLarge.Render(m.title), "")
	}
	for i, c := range m.comps {
		lines = append(lines, m.viewComponent(c, i == m.focus)...)
	}
	lines = append(lines, "", m.th.Muted.Render("[Tab] Next field    [Left/Right] Choose    [Enter] Select    [Esc] Cancel"))

	return m.frame().Render(strings.Join(lines, "\n"))
}

func (m formModel) frame() lipgloss.Style {
	frame := m.th.Frame
	if m.width >= 4 {
		frame = frame.Width(m.width - 2)
	}
	return frame
}

func (m formModel) viewComponent(c render.Component, focused bool) []string {
	marker := "  "
	if focused {
		marker = m.th.Accent.Render("> ")
	}

	switch c.Kind {
	case render.ComponentHeading:
		style := m.th.HeadingMed
		switch c.Heading.Size {
		case assistant.SizeLarge:
			style = m.th.HeadingLarge
		case assistant.SizeSmall:
			style = m.th.HeadingSmall
		}
		return []string{style.Render(c.Heading.Text)}

	case render.ComponentText:
		var out []string
		for _, line := range strings.Split(c.Text.Text, "\n") {
			out = append(out, m.th.Body.Render(line))
		}
		return out

	case render.ComponentLink:
		label := c.Link.Label
		if label == "" {
			label = c.Link.URL
		}
		return []string{marker + m.th.Accent.Underline(true).Render(label) + m.th.Muted.Render("  [Enter] Open")}

	case render.ComponentImage:
		size := ""
		if c.Image.Width > 0 || c.Image.Height > 0 {
			size = fmt.Sprintf(" %dx%d", c.Image.Width, c.Image.Height)
		}
		return []string{m.th.Muted.Render(fmt.Sprintf("[image%s] %s", size, c.Image.Path))}

	case render.ComponentFile:
		label := c.File.Label
		if label == "" {
			label = c.File.Path
		}
		return []string{marker + m.th.Accent.Render(label) + m.th.Muted.Render("  [Enter] Open")}

	case render.ComponentIcon:
		switch c.Icon.Variant {
		case assistant.IconSuccess:
			return []string{m.th.Success.Render("(ok)")}
		case assistant.IconWarning:
			return []string{m.th.Warning.Render("(warning)")}
		default:
			return []string{m.th.Failure.Render("(failed)")}
		}

	case render.ComponentTextField:
		return m.viewTextField(c.TextField, marker, focused)

	case render.ComponentFilePicker:
		return m.viewFilePicker(c.FilePicker, marker, focused)

	case render.ComponentSelect:
		return m.viewChoice(c.Select.Label, c.Select.Name, c.Select.Value, c.Select.Error, marker, focused)

	case render.ComponentRadioGroup:
		return m.viewRadioGroup(c.RadioGroup, marker)

	case render.ComponentCheckbox:
		box := "[ ]"
		if c.Checkbox.Checked {
			box = "[x]"
		}
		line := marker + box + " " + c.Checkbox.Label
		if focused {
			line = marker + m.th.Focus.Render(box+" "+c.Checkbox.Label)
		}
		out := []string{line}
		if c.Checkbox.Error != "" {
			out = append(out, "    "+m.th.Error.Render(c.Checkbox.Error))
		}
		return out

	case render.ComponentSubmitRow:
		var buttons []string
		for i, b := range c.SubmitRow.Buttons {
			style := m.th.Button
			if focused && i == m.buttonIdx {
				style = m.th.ButtonFocus
			}
			buttons = append(buttons, style.Render("[ "+b+" ]"))
		}
		return []string{"", marker + strings.Join(buttons, "  ")}

	default:
		return nil
	}
}

func (m formModel) viewTextField(f *render.TextFieldState, marker string, focused bool) []string {
	var out []string
	if f.Label != "" {
		out = append(out, m.th.Muted.Render(f.Label))
	}

	value := f.Value
	if f.Secret {
		value = strings.Repeat("*", len([]rune(value)))
	}
	if value == "" && f.Placeholder != "" && !focused {
		out = append(out, marker+m.th.Muted.Render(f.Placeholder))
	} else {
		cursor := ""
		if focused {
			cursor = m.th.Accent.Render("_")
		}
		out = append(out, marker+m.th.Body.Render(value)+cursor)
	}
	if f.Error != "" {
		out = append(out, "    "+m.th.Error.Render(f.Error))
	}
	return out
}

func (m formModel) viewFilePicker(f *render.FilePickerState, marker string, focused bool) []string {
	var out []string
	label := f.Label
	if label == "" {
		label = f.Name
	}
	out = append(out, m.th.Muted.Render(label))

	action := "[Enter] Choose file"
	if f.Multiple {
		action = "[Enter] Choose files"
	}
	if len(f.FileTypes) > 0 {
		action += " (" + strings.Join(f.FileTypes, ", ") + ")"
	}
	if f.Pending {
		out = append(out, marker+m.th.Warning.Render("native dialog open..."))
	} else if focused {
		out = append(out, marker+m.th.Focus.Render(action))
	} else {
		out = append(out, marker+m.th.Muted.Render(action))
	}

	for _, p := range f.Paths {
		out = append(out, "    "+m.th.Accent.Render(p))
	}
	if f.Error != "" {
		out = append(out, "    "+m.th.Error.Render(f.Error))
	}
	return out
}

func (m formModel) viewChoice(label, name, value, errText, marker string, focused bool) []string {
	var out []string
	if label == "" {
		label = name
	}
	out = append(out, m.th.Muted.Render(label))

	shown := value
	if shown == "" {
		shown = "(none)"
	}
	line := "< " + shown + " >"
	if focused {
		out = append(out, marker+m.th.Focus.Render(line))
	} else {
		out = append(out, marker+line)
	}
	if errText != "" {
		out = append(out, "    "+m.th.Error.Render(errText))
	}
	return out
}

func (m formModel) viewRadioGroup(r *render.RadioGroupState, marker string) []string {
	var out []string
	label := r.Label
	if label == "" {
		label = r.Name
	}
	out = append(out, m.th.Muted.Render(label))

	for _, opt := range r.Options {
		dot := "( )"
		if opt == r.Value {
			dot = "(x)"
		}
		out = append(out, marker+dot+" "+opt)
	}
	if r.Error != "" {
		out = append(out, "    "+m.th.Error.Render(r.Error))
	}
	return out
}

func keyRune(k tea.KeyMsg) rune {
	if k.Type == tea.KeyRunes && len(k.Runes) == 1 {
		return k.Runes[0]
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
