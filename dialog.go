package assistant

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

// Declaration errors raised by the Add methods. They reach the declaring
// caller immediately and never the rendering surface.
var (
	ErrEmptyName     = errors.New("assistant: input name is empty")
	ErrReservedName  = errors.New("assistant: input name is reserved")
	ErrDuplicateName = errors.New("assistant: duplicate input name")
	ErrBadDefault    = errors.New("assistant: default not among declared options")
)

// Dialog accumulates the element sequence for one form. Elements are
// declared in display order before the form is shown; the sequence is
// frozen once a session starts.
//
// Dialog validates at declaration time so malformed elements never
// reach a surface. Input names must be unique and must not shadow the
// reserved submit key.
type Dialog struct {
	elements   []Element
	names      map[string]int
	validators map[string]Validator
}

// NewDialog returns an empty dialog ready for element declarations.
func NewDialog() *Dialog {
	return &Dialog{names: make(map[string]int), validators: make(map[string]Validator)}
}

// NewDialogFromElements validates a pre-built element sequence, such as
// one decoded from a declaration file, and wraps it in a dialog.
func NewDialogFromElements(elements []Element) (*Dialog, error) {
	d := NewDialog()
	for i, el := range elements {
		if err := d.add(el, nil); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return d, nil
}

// AddHeading appends a section title. WithSize adjusts its scale.
func (d *Dialog) AddHeading(value string, opts ...Option) {
	o := applyOptions(opts)
	d.elements = append(d.elements, Heading{Value: value, Size: sizeOrMedium(o.size)})
}

// AddText appends a block of static text. WithSize adjusts its scale.
func (d *Dialog) AddText(value string, opts ...Option) {
	o := applyOptions(opts)
	d.elements = append(d.elements, Text{Value: value, Size: sizeOrMedium(o.size)})
}

// AddLink appends an external URL, labelled with WithLabel.
func (d *Dialog) AddLink(url string, opts ...Option) {
	o := applyOptions(opts)
	d.elements = append(d.elements, Link{Value: url, Label: o.label})
}

// AddImage appends a picture by path or URL. WithWidth and WithHeight
// override its natural size.
func (d *Dialog) AddImage(value string, opts ...Option) {
	o := applyOptions(opts)
	d.elements = append(d.elements, Image{Value: value, Width: o.width, Height: o.height})
}

// AddFile appends a single file the user can open from the form.
func (d *Dialog) AddFile(path string, opts ...Option) {
	o := applyOptions(opts)
	d.elements = append(d.elements, File{Value: path, Label: o.label})
}

// AddFiles appends one File element per path matching the glob pattern,
// in lexical order.
func (d *Dialog) AddFiles(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("assistant: bad file pattern %q: %w", pattern, err)
	}
	for _, m := range matches {
		d.elements = append(d.elements, File{Value: m})
	}
	return nil
}

// AddIcon appends a status glyph. Size is in pixels; zero or negative
// falls back to 48.
func (d *Dialog) AddIcon(variant IconVariant, size int) {
	if size <= 0 {
		size = 48
	}
	d.elements = append(d.elements, Icon{Variant: variant, Size: size})
}

// AddTextInput appends a free-form text field seeded empty. WithRows
// turns it into a multi-line area; WithValidator attaches a submit-time
// check.
func (d *Dialog) AddTextInput(name string, opts ...Option) error {
	o := applyOptions(opts)
	el := TextInput{Name: name, Label: o.label, Placeholder: o.placeholder, Rows: o.rows}
	return d.add(el, o.validator)
}

// AddPasswordInput appends a masked text field seeded empty.
func (d *Dialog) AddPasswordInput(name string, opts ...Option) error {
	o := applyOptions(opts)
	el := PasswordInput{Name: name, Label: o.label, Placeholder: o.placeholder}
	return d.add(el, o.validator)
}

// AddHiddenInput appends an invisible input carrying a fixed value into
// the result record.
func (d *Dialog) AddHiddenInput(name, value string) error {
	return d.add(HiddenInput{Name: name, Value: value}, nil)
}

// AddFileInput appends a native file picker. The result value is a list
// of paths; with multiple unset the picker accepts one file. WithSource,
// WithDestination and WithFileTypes refine the picker.
func (d *Dialog) AddFileInput(name string, multiple bool, opts ...Option) error {
	o := applyOptions(opts)
	el := FileInput{
		Name:        name,
		Label:       o.label,
		Source:      o.source,
		Destination: o.destination,
		FileTypes:   o.fileTypes,
		Multiple:    multiple,
	}
	return d.add(el, o.validator)
}

// AddDropDown appends a single-choice select. WithDefault preselects an
// option and must name one of the declared options.
func (d *Dialog) AddDropDown(name string, options []string, opts ...Option) error {
	o := applyOptions(opts)
	el := DropDown{
		Name:    name,
		Options: append([]string(nil), options...),
		Default: o.def,
		Label:   o.label,
	}
	return d.add(el, o.validator)
}

// AddRadioButtons appends a single-choice group with every option
// visible. WithDefault must name one of the declared options.
func (d *Dialog) AddRadioButtons(name string, options []string, opts ...Option) error {
	o := applyOptions(opts)
	el := RadioButtons{
		Name:    name,
		Options: append([]string(nil), options...),
		Default: o.def,
		Label:   o.label,
	}
	return d.add(el, o.validator)
}

// AddCheckbox appends a boolean toggle seeded with checked.
func (d *Dialog) AddCheckbox(name, label string, checked bool, opts ...Option) error {
	o := applyOptions(opts)
	return d.add(Checkbox{Name: name, Label: label, Default: checked}, o.validator)
}

// AddSubmit appends the button row that finalizes the form. WithDefault
// marks the button activated by pressing enter and must name one of the
// declared buttons.
func (d *Dialog) AddSubmit(buttons []string, opts ...Option) error {
	o := applyOptions(opts)
	el := Submit{Buttons: append([]string(nil), buttons...), Default: o.def}
	return d.add(el, nil)
}

// Elements returns the declared sequence in display order.
func (d *Dialog) Elements() Elements {
	return append(Elements(nil), d.elements...)
}

// Validators returns the submit-time checks keyed by input name.
func (d *Dialog) Validators() map[string]Validator {
	out := make(map[string]Validator, len(d.validators))
	for k, v := range d.validators {
		out[k] = v
	}
	return out
}

// Clear drops every declared element so the dialog can be reused for a
// fresh form.
func (d *Dialog) Clear() {
	d.elements = nil
	d.names = make(map[string]int)
	d.validators = make(map[string]Validator)
}

func (d *Dialog) add(el Element, v Validator) error {
	if err := validateElement(el); err != nil {
		return err
	}
	if in, ok := el.(InputElement); ok {
		name := in.InputName()
		if name == "" {
			return ErrEmptyName
		}
		if name == SubmitKey {
			return fmt.Errorf("%w: %q", ErrReservedName, name)
		}
		if _, exists := d.names[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		d.names[name] = len(d.elements)
		if v != nil {
			d.validators[name] = v
		}
	}
	d.elements = append(d.elements, el)
	return nil
}

func validateElement(el Element) error {
	switch e := el.(type) {
	case DropDown:
		if e.Default != "" && len(e.Options) > 0 && !slices.Contains(e.Options, e.Default) {
			return fmt.Errorf("%w: drop-down %q default %q", ErrBadDefault, e.Name, e.Default)
		}
	case RadioButtons:
		if e.Default != "" && len(e.Options) > 0 && !slices.Contains(e.Options, e.Default) {
			return fmt.Errorf("%w: radio group %q default %q", ErrBadDefault, e.Name, e.Default)
		}
	case Submit:
		if e.Default != "" && !slices.Contains(e.Buttons, e.Default) {
			return fmt.Errorf("%w: submit default %q", ErrBadDefault, e.Default)
		}
	}
	return nil
}

func sizeOrMedium(s Size) Size {
	if s == "" {
		return SizeMedium
	}
	return s
}
