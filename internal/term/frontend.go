package term

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"assistant/render"
	"assistant/surface"
)

// Frontend is the terminal surface. Run blocks in the calling
// goroutine; Render, Loading, and Close are safe to call from the
// surface run loop.
type Frontend struct {
	prog   *tea.Program
	events chan surface.Event
	done   chan struct{}
	once   sync.Once
}

var _ surface.Frontend = (*Frontend)(nil)

// New builds a terminal frontend. An empty title leaves the form
// untitled.
func New(title string) *Frontend {
	f := &Frontend{
		events: make(chan surface.Event, 16),
		done:   make(chan struct{}),
	}
	f.prog = tea.NewProgram(newFormModel(title, f), tea.WithAltScreen())
	return f
}

// Run takes over the terminal until the form is closed.
func (f *Frontend) Run() error {
	_, err := f.prog.Run()
	f.Close()
	return err
}

func (f *Frontend) Render(components []render.Component) {
	f.prog.Send(componentsMsg(components))
}

func (f *Frontend) Loading() {
	f.prog.Send(loadingMsg{})
}

func (f *Frontend) Events() <-chan surface.Event { return f.events }

func (f *Frontend) Close() {
	f.once.Do(func() {
		close(f.done)
		f.prog.Quit()
	})
}

func (f *Frontend) emit(ev surface.Event) {
	select {
	case f.events <- ev:
	case <-f.done:
	}
}
