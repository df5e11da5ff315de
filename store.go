package assistant

// SubmitKey is the reserved result key holding the label of the button
// that finalized the form. Input names may not collide with it.
const SubmitKey = "submit"

// Result maps input names to their current values. Values are plain
// data: string, bool, or []string depending on the input kind, so a
// record round-trips through JSON unchanged.
//
// A Result doubles as the live store during a session and as the
// finalized record returned to the caller; Finalize produces the
// latter.
type Result map[string]any

// Seed builds the initial store for an element sequence. Every input
// element contributes exactly one entry keyed by its name:
//
//	HiddenInput            its fixed value
//	Checkbox               its default boolean
//	DropDown, RadioButtons its default, or "" for no selection
//	TextInput, Password    ""
//	FileInput              an empty path list
//
// Non-input elements contribute nothing. When two inputs share a name
// the later declaration wins.
func Seed(elements []Element) Result {
	store := make(Result)
	for _, el := range elements {
		if in, ok := el.(InputElement); ok {
			store[in.InputName()] = in.seedValue()
		}
	}
	return store
}

// Update returns a copy of the store with name set to value. The
// receiver is never mutated, so views holding the previous store stay
// consistent while a re-render is in flight.
func (r Result) Update(name string, value any) Result {
	next := make(Result, len(r)+1)
	for k, v := range r {
		next[k] = v
	}
	next[name] = value
	return next
}

// Finalize snapshots the store into the record handed back to the
// caller, recording the pressed button under SubmitKey.
func (r Result) Finalize(button string) Result {
	return r.Update(SubmitKey, button)
}

// String reads a string value, returning "" when the key is absent or
// holds another type.
func (r Result) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// Bool reads a boolean value, returning false when the key is absent or
// holds another type.
func (r Result) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

// Paths reads a file-path list, returning nil when the key is absent or
// holds another type.
func (r Result) Paths(name string) []string {
	p, _ := r[name].([]string)
	return p
}
