package term

import "assistant/render"

// Preview renders a component tree once, styled like the interactive
// surface but without running a program or touching the terminal
// state. Used to check a form declaration before any host exists.
func Preview(title string, comps []render.Component) string {
	m := newFormModel(title, nil)
	m.width = 80
	m = m.setComponents(comps)
	m.focus = -1
	return m.View()
}
