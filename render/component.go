// Package render turns a declared element sequence plus the current
// result values into the component tree a surface displays. Building is
// pure and repeated from scratch on every value change; the Renderer
// wraps the per-session state around it and talks to the host through a
// bridge client.
package render

import "assistant"

type ComponentKind string

const (
	ComponentHeading    ComponentKind = "heading"
	ComponentText       ComponentKind = "text"
	ComponentLink       ComponentKind = "link"
	ComponentImage      ComponentKind = "image"
	ComponentFile       ComponentKind = "file"
	ComponentIcon       ComponentKind = "icon"
	ComponentTextField  ComponentKind = "text-field"
	ComponentFilePicker ComponentKind = "file-picker"
	ComponentSelect     ComponentKind = "select"
	ComponentRadioGroup ComponentKind = "radio-group"
	ComponentCheckbox   ComponentKind = "checkbox"
	ComponentSubmitRow  ComponentKind = "submit-row"
)

type HeadingState struct {
	Text string         `json:"text"`
	Size assistant.Size `json:"size"`
}

type TextState struct {
	Text string         `json:"text"`
	Size assistant.Size `json:"size"`
}

type LinkState struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

type ImageState struct {
	Path   string `json:"path"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type FileState struct {
	Path  string `json:"path"`
	Label string `json:"label,omitempty"`
}

type IconState struct {
	Variant assistant.IconVariant `json:"variant"`
	Size    int                   `json:"size"`
}

type TextFieldState struct {
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value"`
	Rows        int    `json:"rows,omitempty"`
	Secret      bool   `json:"secret,omitempty"`
	Error       string `json:"error,omitempty"`
}

type FilePickerState struct {
	Name      string   `json:"name"`
	Label     string   `json:"label,omitempty"`
	FileTypes []string `json:"file_types,omitempty"`
	Multiple  bool     `json:"multiple,omitempty"`
	Paths     []string `json:"paths"`
	Pending   bool     `json:"pending,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type SelectState struct {
	Name    string   `json:"name"`
	Label   string   `json:"label,omitempty"`
	Options []string `json:"options"`
	Value   string   `json:"value"`
	Error   string   `json:"error,omitempty"`
}

type RadioGroupState struct {
	Name    string   `json:"name"`
	Label   string   `json:"label,omitempty"`
	Options []string `json:"options"`
	Value   string   `json:"value"`
	Error   string   `json:"error,omitempty"`
}

type CheckboxState struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Error   string `json:"error,omitempty"`
}

type SubmitRowState struct {
	Buttons []string `json:"buttons"`
	Default string   `json:"default,omitempty"`
}

// Component is one renderable node. Exactly the state pointer matching
// Kind is set.
type Component struct {
	ID         string           `json:"id"`
	Kind       ComponentKind    `json:"kind"`
	Heading    *HeadingState    `json:"heading,omitempty"`
	Text       *TextState       `json:"text,omitempty"`
	Link       *LinkState       `json:"link,omitempty"`
	Image      *ImageState      `json:"image,omitempty"`
	File       *FileState       `json:"file,omitempty"`
	Icon       *IconState       `json:"icon,omitempty"`
	TextField  *TextFieldState  `json:"text_field,omitempty"`
	FilePicker *FilePickerState `json:"file_picker,omitempty"`
	Select     *SelectState     `json:"select,omitempty"`
	RadioGroup *RadioGroupState `json:"radio_group,omitempty"`
	Checkbox   *CheckboxState   `json:"checkbox,omitempty"`
	SubmitRow  *SubmitRowState  `json:"submit_row,omitempty"`
}

// InputName returns the result-store key a component edits, or "" for
// display-only components and the submit row.
func (c Component) InputName() string {
	switch {
	case c.TextField != nil:
		return c.TextField.Name
	case c.FilePicker != nil:
		return c.FilePicker.Name
	case c.Select != nil:
		return c.Select.Name
	case c.RadioGroup != nil:
		return c.RadioGroup.Name
	case c.Checkbox != nil:
		return c.Checkbox.Name
	}
	return ""
}
