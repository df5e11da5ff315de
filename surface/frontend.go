// Package surface drives an interactive frontend against a dialog
// host. The frontend owns the screen and the input devices; the run
// loop owns the protocol. Frontends report user intent as Events and
// receive a fresh component tree after every change.
package surface

import "assistant/render"

// Event is a user action reported by a frontend. Implementations are
// the event structs below and nothing else.
type Event interface {
	event()
}

// SetValue carries an edited input value. Value is a string for text
// inputs and option groups, a bool for checkboxes.
type SetValue struct {
	Name  string
	Value any
}

// Submit asks to finalize the form with the pressed button label.
type Submit struct {
	Button string
}

// OpenFile asks the host to open a path or URL on the user's desktop.
type OpenFile struct {
	Path string
}

// PickFiles asks to start a native file dialog for the named input.
type PickFiles struct {
	Name string
}

// Closed reports that the user dismissed the surface without
// submitting.
type Closed struct{}

func (SetValue) event()  {}
func (Submit) event()    {}
func (OpenFile) event()  {}
func (PickFiles) event() {}
func (Closed) event()    {}

// Frontend is a rendering target for the run loop. Render and Loading
// are called from the loop goroutine; Events delivers user actions
// from the frontend's own goroutine. Close asks the frontend to tear
// itself down, after which its Events channel should close.
type Frontend interface {
	Render(components []render.Component)
	Loading()
	Events() <-chan Event
	Close()
}
