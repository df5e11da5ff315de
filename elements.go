// Package assistant declares dialog forms as ordered element sequences
// and collects the values a user submits for them. A form is described
// once, up front, by the calling automation; a rendering surface turns
// the declaration into an interactive view and reports the final values
// back over the bridge protocol.
package assistant

import "strings"

// Kind identifies one element variant on the wire and in dispatch.
type Kind string

const (
	KindHeading       Kind = "heading"
	KindText          Kind = "text"
	KindLink          Kind = "link"
	KindImage         Kind = "image"
	KindFile          Kind = "file"
	KindIcon          Kind = "icon"
	KindTextInput     Kind = "input-text"
	KindPasswordInput Kind = "input-password"
	KindHiddenInput   Kind = "input-hidden"
	KindFileInput     Kind = "input-file"
	KindDropDown      Kind = "input-dropdown"
	KindRadioButtons  Kind = "input-radio"
	KindCheckbox      Kind = "input-checkbox"
	KindSubmit        Kind = "submit"
)

// Input reports whether elements of this kind contribute a named value
// to the result store.
func (k Kind) Input() bool {
	return strings.HasPrefix(string(k), "input-")
}

// Size scales headings and text blocks.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// IconVariant selects one of the built-in status icons.
type IconVariant string

const (
	IconSuccess IconVariant = "success"
	IconWarning IconVariant = "warning"
	IconFailure IconVariant = "failure"
)

// Element is one declarative unit of a dialog form. The variant set is
// closed: every implementation lives in this package, and rendering
// dispatch is exhaustive over it.
type Element interface {
	Kind() Kind
	element()
}

// InputElement is the subset of elements that own an entry in the
// result store, keyed by their name.
type InputElement interface {
	Element
	InputName() string
	seedValue() any
}

// Heading is a section title.
type Heading struct {
	Value string
	Size  Size
}

func (Heading) Kind() Kind { return KindHeading }
func (Heading) element() {}

// Text is a block of static copy. Newlines are preserved.
type Text struct {
	Value string
	Size  Size
}

func (Text) Kind() Kind { return KindText }
func (Text) element() {}

// Link is an external URL, shown with an optional label.
type Link struct {
	Value string
	Label string
}

func (Link) Kind() Kind { return KindLink }
func (Link) element() {}

// Image embeds a picture by path or URL. Zero width/height means
// natural size.
type Image struct {
	Value  string
	Width  int
	Height int
}

func (Image) Kind() Kind { return KindImage }
func (Image) element() {}

// File points at a local file the user can open from the form.
type File struct {
	Value string
	Label string
}

func (File) Kind() Kind { return KindFile }
func (File) element() {}

// Icon is a status glyph with a pixel size.
type Icon struct {
	Variant IconVariant
	Size    int
}

func (Icon) Kind() Kind { return KindIcon }
func (Icon) element() {}

// TextInput is a free-form text field. Rows above one renders a
// multi-line area.
type TextInput struct {
	Name        string
	Label       string
	Placeholder string
	Rows        int
}

func (TextInput) Kind() Kind { return KindTextInput }
func (TextInput) element() {}
func (e TextInput) InputName() string { return e.Name }
func (TextInput) seedValue() any { return "" }

// PasswordInput is a masked text field. Its value is returned to the
// caller like any other input but is kept out of logs and session
// records.
type PasswordInput struct {
	Name        string
	Label       string
	Placeholder string
}

func (PasswordInput) Kind() Kind { return KindPasswordInput }
func (PasswordInput) element() {}
func (e PasswordInput) InputName() string { return e.Name }
func (PasswordInput) seedValue() any { return "" }

// HiddenInput carries a fixed value through the form without being
// rendered.
type HiddenInput struct {
	Name  string
	Value string
}

func (HiddenInput) Kind() Kind { return KindHiddenInput }
func (HiddenInput) element() {}
func (e HiddenInput) InputName() string { return e.Name }
func (e HiddenInput) seedValue() any { return e.Value }

// FileInput asks the user to pick one or more files through the host's
// native dialog. Its result value is always a list of paths; with
// Multiple unset the picker accepts a single file and the list holds at
// most one entry.
type FileInput struct {
	Name        string
	Label       string
	Source      string
	Destination string
	FileTypes   []string
	Multiple    bool
}

func (FileInput) Kind() Kind { return KindFileInput }
func (FileInput) element() {}
func (e FileInput) InputName() string { return e.Name }
func (FileInput) seedValue() any { return []string{} }

// DropDown is a single-choice select. An empty Default means no
// initial selection.
type DropDown struct {
	Name    string
	Options []string
	Default string
	Label   string
}

func (DropDown) Kind() Kind { return KindDropDown }
func (DropDown) element() {}
func (e DropDown) InputName() string { return e.Name }
func (e DropDown) seedValue() any { return e.Default }

// RadioButtons is a single-choice group rendered with all options
// visible.
type RadioButtons struct {
	Name    string
	Options []string
	Default string
	Label   string
}

func (RadioButtons) Kind() Kind { return KindRadioButtons }
func (RadioButtons) element() {}
func (e RadioButtons) InputName() string { return e.Name }
func (e RadioButtons) seedValue() any { return e.Default }

// Checkbox is a boolean toggle.
type Checkbox struct {
	Name    string
	Label   string
	Default bool
}

func (Checkbox) Kind() Kind { return KindCheckbox }
func (Checkbox) element() {}
func (e Checkbox) InputName() string { return e.Name }
func (e Checkbox) seedValue() any { return e.Default }

// Submit declares the buttons that finalize the form. Pressing one
// produces the result record with the button's label under the submit
// key. A form without buttons cannot be completed.
type Submit struct {
	Buttons []string
	Default string
}

func (Submit) Kind() Kind { return KindSubmit }
func (Submit) element() {}

// InputNames returns the names of the input elements in declaration
// order, without deduplication.
func InputNames(elements []Element) []string {
	var names []string
	for _, el := range elements {
		if in, ok := el.(InputElement); ok {
			names = append(names, in.InputName())
		}
	}
	return names
}
