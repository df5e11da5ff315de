package render

import (
	"fmt"

	"assistant"
)

// Build maps the declared elements and the current store to the
// component sequence a surface displays, in declaration order. It is
// pure: the same inputs always produce the same tree, and callers
// rebuild it from scratch after every store change.
//
// Dispatch is exhaustive over the element variants. Hidden inputs
// produce no component; they live only in the store. Any other variant
// without a case here is a programming error, not a runtime condition,
// and panics.
func Build(elements []assistant.Element, store assistant.Result) []Component {
	comps := make([]Component, 0, len(elements))
	for i, el := range elements {
		switch e := el.(type) {
		case assistant.Heading:
			comps = append(comps, Component{
				ID:      elementID(i),
				Kind:    ComponentHeading,
				Heading: &HeadingState{Text: e.Value, Size: e.Size},
			})
		case assistant.Text:
			comps = append(comps, Component{
				ID:   elementID(i),
				Kind: ComponentText,
				Text: &TextState{Text: e.Value, Size: e.Size},
			})
		case assistant.Link:
			comps = append(comps, Component{
				ID:   elementID(i),
				Kind: ComponentLink,
				Link: &LinkState{URL: e.Value, Label: e.Label},
			})
		case assistant.Image:
			comps = append(comps, Component{
				ID:    elementID(i),
				Kind:  ComponentImage,
				Image: &ImageState{Path: e.Value, Width: e.Width, Height: e.Height},
			})
		case assistant.File:
			comps = append(comps, Component{
				ID:   elementID(i),
				Kind: ComponentFile,
				File: &FileState{Path: e.Value, Label: e.Label},
			})
		case assistant.Icon:
			comps = append(comps, Component{
				ID:   elementID(i),
				Kind: ComponentIcon,
				Icon: &IconState{Variant: e.Variant, Size: e.Size},
			})
		case assistant.TextInput:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentTextField,
				TextField: &TextFieldState{
					Name:        e.Name,
					Label:       e.Label,
					Placeholder: e.Placeholder,
					Value:       store.String(e.Name),
					Rows:        e.Rows,
				},
			})
		case assistant.PasswordInput:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentTextField,
				TextField: &TextFieldState{
					Name:        e.Name,
					Label:       e.Label,
					Placeholder: e.Placeholder,
					Value:       store.String(e.Name),
					Secret:      true,
				},
			})
		case assistant.HiddenInput:
			// Store-only; nothing to display.
		case assistant.FileInput:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentFilePicker,
				FilePicker: &FilePickerState{
					Name:      e.Name,
					Label:     e.Label,
					FileTypes: e.FileTypes,
					Multiple:  e.Multiple,
					Paths:     store.Paths(e.Name),
				},
			})
		case assistant.DropDown:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentSelect,
				Select: &SelectState{
					Name:    e.Name,
					Label:   e.Label,
					Options: e.Options,
					Value:   store.String(e.Name),
				},
			})
		case assistant.RadioButtons:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentRadioGroup,
				RadioGroup: &RadioGroupState{
					Name:    e.Name,
					Label:   e.Label,
					Options: e.Options,
					Value:   store.String(e.Name),
				},
			})
		case assistant.Checkbox:
			comps = append(comps, Component{
				ID:   e.Name,
				Kind: ComponentCheckbox,
				Checkbox: &CheckboxState{
					Name:    e.Name,
					Label:   e.Label,
					Checked: store.Bool(e.Name),
				},
			})
		case assistant.Submit:
			comps = append(comps, Component{
				ID:        elementID(i),
				Kind:      ComponentSubmitRow,
				SubmitRow: &SubmitRowState{Buttons: e.Buttons, Default: e.Default},
			})
		default:
			panic(fmt.Sprintf("render: unhandled element kind %T", el))
		}
	}
	return comps
}

// ApplyFieldErrors returns a copy of the tree with inline messages
// attached to the named inputs. Components are copied before mutation
// so trees from earlier builds stay untouched.
func ApplyFieldErrors(comps []Component, errs map[string]string) []Component {
	if len(errs) == 0 {
		return comps
	}
	out := append([]Component(nil), comps...)
	for i, c := range out {
		msg, ok := errs[c.InputName()]
		if !ok || c.InputName() == "" {
			continue
		}
		switch {
		case c.TextField != nil:
			st := *c.TextField
			st.Error = msg
			out[i].TextField = &st
		case c.FilePicker != nil:
			st := *c.FilePicker
			st.Error = msg
			out[i].FilePicker = &st
		case c.Select != nil:
			st := *c.Select
			st.Error = msg
			out[i].Select = &st
		case c.RadioGroup != nil:
			st := *c.RadioGroup
			st.Error = msg
			out[i].RadioGroup = &st
		case c.Checkbox != nil:
			st := *c.Checkbox
			st.Error = msg
			out[i].Checkbox = &st
		}
	}
	return out
}

func elementID(index int) string {
	return fmt.Sprintf("el-%d", index)
}
