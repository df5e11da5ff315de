package render

import (
	"context"
	"log"

	"assistant"
	"assistant/bridge"
)

// Renderer owns the surface-side state of one dialog session: the
// fetched elements, the live result store, transient pick state and any
// inline errors from a rejected submit. It is driven from a single
// event loop; methods are not safe for concurrent use.
type Renderer struct {
	client bridge.Client

	elements  assistant.Elements
	store     assistant.Result
	fieldErrs map[string]string
	pending   map[string]bool
	loaded    bool
}

// New wires a renderer to its bridge client. Pass bridge.Nop{} to run
// without a host; the renderer then stays in its loading state.
func New(client bridge.Client) *Renderer {
	return &Renderer{client: client, pending: make(map[string]bool)}
}

// Load fetches the declared elements and seeds the store from their
// defaults. An empty element list means the host has nothing to show
// yet; the renderer stays loading and the caller retries later.
func (r *Renderer) Load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	els, err := r.client.GetElements(ctx)
	if err != nil {
		return err
	}
	if len(els) == 0 {
		return nil
	}
	r.elements = els
	r.store = assistant.Seed(els)
	r.loaded = true
	return nil
}

// Loading reports whether the renderer is still waiting for elements.
func (r *Renderer) Loading() bool { return !r.loaded }

// Components builds the current view: the pure tree from elements and
// store, plus inline errors and pending-pick markers.
func (r *Renderer) Components() []Component {
	comps := Build(r.elements, r.store)
	comps = ApplyFieldErrors(comps, r.fieldErrs)
	for i, c := range comps {
		if c.FilePicker != nil && r.pending[c.FilePicker.Name] {
			st := *c.FilePicker
			st.Pending = true
			comps[i].FilePicker = &st
		}
	}
	return comps
}

// SetValue records a changed input value. Editing a field clears its
// stale inline error.
func (r *Renderer) SetValue(name string, value any) {
	if r.Loading() {
		return
	}
	r.store = r.store.Update(name, value)
	delete(r.fieldErrs, name)
}

// Value reads the current store value for an input.
func (r *Renderer) Value(name string) any {
	return r.store[name]
}

// BeginPick marks a file input as waiting on the host's native picker
// and reports whether the pick should proceed. The OpenFileDialog call
// itself runs outside the event loop so other interaction continues
// while the dialog is open.
func (r *Renderer) BeginPick(name string) bool {
	if r.Loading() || r.pending[name] {
		return false
	}
	r.pending[name] = true
	return true
}

// CompletePick applies a finished pick. An empty path list is a
// cancelled dialog and leaves the stored value untouched. A pick for a
// single-file input keeps only the first path.
func (r *Renderer) CompletePick(name string, paths []string, err error) {
	delete(r.pending, name)
	if err != nil {
		log.Printf("render: file pick for %q failed: %v", name, err)
		return
	}
	if len(paths) == 0 {
		return
	}
	if el, ok := r.fileInput(name); ok && !el.Multiple && len(paths) > 1 {
		paths = paths[:1]
	}
	r.SetValue(name, paths)
}

// OpenFile asks the host to open a path with its platform handler.
// Failures are logged, never shown in the form.
func (r *Renderer) OpenFile(ctx context.Context, path string) {
	if err := r.client.OpenFile(ctx, path); err != nil {
		log.Printf("render: open %q failed: %v", path, err)
	}
}

// ReportHeight pushes the current rendered height to the host for
// window sizing. Best-effort: a missing peer is not an error the form
// needs to see.
func (r *Renderer) ReportHeight(ctx context.Context) {
	if err := r.client.SetHeight(ctx, Height(r.Components())); err != nil {
		log.Printf("render: height report failed: %v", err)
	}
}

// Submit finalizes the store under the pressed button and delivers the
// record. It reports true when the host accepted and the cycle is over.
// A rejected record re-opens the form with inline errors attached; a
// transport failure leaves the form as it was.
func (r *Renderer) Submit(ctx context.Context, button string) bool {
	if r.Loading() {
		return false
	}
	record := r.store.Finalize(button)
	ack, err := r.client.SetResult(ctx, record)
	if err != nil {
		log.Printf("render: submit failed: %v", err)
		return false
	}
	if !ack.Accepted {
		r.fieldErrs = ack.FieldErrors
		return false
	}
	return true
}

func (r *Renderer) fileInput(name string) (assistant.FileInput, bool) {
	for _, el := range r.elements {
		if fi, ok := el.(assistant.FileInput); ok && fi.Name == name {
			return fi, true
		}
	}
	return assistant.FileInput{}, false
}
