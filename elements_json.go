package assistant

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Elements is an ordered element sequence with a defined wire form:
// each element is one object tagged by "type", carrying only the keys
// its kind uses. The same shape is used for bridge payloads (JSON) and
// declaration files (JSON or YAML).
type Elements []Element

// elementEnvelope is the flat wire shape shared by every element kind.
// Size and Default are untyped because their type follows the kind:
// size is a scale word for headings and text but a pixel count for
// icons, and default is a string except for checkboxes.
type elementEnvelope struct {
	Kind        Kind        `json:"type" yaml:"type"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Value       string      `json:"value,omitempty" yaml:"value,omitempty"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Rows        int         `json:"rows,omitempty" yaml:"rows,omitempty"`
	Size        any         `json:"size,omitempty" yaml:"size,omitempty"`
	Variant     IconVariant `json:"variant,omitempty" yaml:"variant,omitempty"`
	Width       int         `json:"width,omitempty" yaml:"width,omitempty"`
	Height      int         `json:"height,omitempty" yaml:"height,omitempty"`
	Source      string      `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string      `json:"destination,omitempty" yaml:"destination,omitempty"`
	FileTypes   []string    `json:"file_type,omitempty" yaml:"file_type,omitempty"`
	Multiple    bool        `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty"`
	Buttons     []string    `json:"buttons,omitempty" yaml:"buttons,omitempty"`
}

func (es Elements) MarshalJSON() ([]byte, error) {
	return json.Marshal(es.envelopes())
}

func (es *Elements) UnmarshalJSON(data []byte) error {
	var envs []elementEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out, err := fromEnvelopes(envs)
	if err != nil {
		return err
	}
	*es = out
	return nil
}

func (es Elements) MarshalYAML() (any, error) {
	return es.envelopes(), nil
}

func (es *Elements) UnmarshalYAML(value *yaml.Node) error {
	var envs []elementEnvelope
	if err := value.Decode(&envs); err != nil {
		return err
	}
	out, err := fromEnvelopes(envs)
	if err != nil {
		return err
	}
	*es = out
	return nil
}

func (es Elements) envelopes() []elementEnvelope {
	envs := make([]elementEnvelope, 0, len(es))
	for _, el := range es {
		envs = append(envs, toEnvelope(el))
	}
	return envs
}

func toEnvelope(el Element) elementEnvelope {
	env := elementEnvelope{Kind: el.Kind()}
	switch e := el.(type) {
	case Heading:
		env.Value = e.Value
		env.Size = wireSize(e.Size)
	case Text:
		env.Value = e.Value
		env.Size = wireSize(e.Size)
	case Link:
		env.Value = e.Value
		env.Label = e.Label
	case Image:
		env.Value = e.Value
		env.Width = e.Width
		env.Height = e.Height
	case File:
		env.Value = e.Value
		env.Label = e.Label
	case Icon:
		env.Variant = e.Variant
		env.Size = e.Size
	case TextInput:
		env.Name = e.Name
		env.Label = e.Label
		env.Placeholder = e.Placeholder
		env.Rows = e.Rows
	case PasswordInput:
		env.Name = e.Name
		env.Label = e.Label
		env.Placeholder = e.Placeholder
	case HiddenInput:
		env.Name = e.Name
		env.Value = e.Value
	case FileInput:
		env.Name = e.Name
		env.Label = e.Label
		env.Source = e.Source
		env.Destination = e.Destination
		env.FileTypes = e.FileTypes
		env.Multiple = e.Multiple
	case DropDown:
		env.Name = e.Name
		env.Label = e.Label
		env.Options = e.Options
		env.Default = wireDefault(e.Default)
	case RadioButtons:
		env.Name = e.Name
		env.Label = e.Label
		env.Options = e.Options
		env.Default = wireDefault(e.Default)
	case Checkbox:
		env.Name = e.Name
		env.Label = e.Label
		env.Default = e.Default
	case Submit:
		env.Buttons = e.Buttons
		env.Default = wireDefault(e.Default)
	default:
		panic(fmt.Sprintf("assistant: unhandled element kind %T", el))
	}
	return env
}

func fromEnvelopes(envs []elementEnvelope) (Elements, error) {
	out := make(Elements, 0, len(envs))
	for i, env := range envs {
		el, err := fromEnvelope(env)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, el)
	}
	return out, nil
}

func fromEnvelope(env elementEnvelope) (Element, error) {
	switch env.Kind {
	case KindHeading:
		return Heading{Value: env.Value, Size: sizeFromWire(env.Size)}, nil
	case KindText:
		return Text{Value: env.Value, Size: sizeFromWire(env.Size)}, nil
	case KindLink:
		return Link{Value: env.Value, Label: env.Label}, nil
	case KindImage:
		return Image{Value: env.Value, Width: env.Width, Height: env.Height}, nil
	case KindFile:
		return File{Value: env.Value, Label: env.Label}, nil
	case KindIcon:
		return Icon{Variant: env.Variant, Size: intFromWire(env.Size)}, nil
	case KindTextInput:
		return TextInput{Name: env.Name, Label: env.Label, Placeholder: env.Placeholder, Rows: env.Rows}, nil
	case KindPasswordInput:
		return PasswordInput{Name: env.Name, Label: env.Label, Placeholder: env.Placeholder}, nil
	case KindHiddenInput:
		return HiddenInput{Name: env.Name, Value: env.Value}, nil
	case KindFileInput:
		return FileInput{
			Name:        env.Name,
			Label:       env.Label,
			Source:      env.Source,
			Destination: env.Destination,
			FileTypes:   env.FileTypes,
			Multiple:    env.Multiple,
		}, nil
	case KindDropDown:
		return DropDown{Name: env.Name, Options: env.Options, Default: stringFromWire(env.Default), Label: env.Label}, nil
	case KindRadioButtons:
		return RadioButtons{Name: env.Name, Options: env.Options, Default: stringFromWire(env.Default), Label: env.Label}, nil
	case KindCheckbox:
		return Checkbox{Name: env.Name, Label: env.Label, Default: boolFromWire(env.Default)}, nil
	case KindSubmit:
		return Submit{Buttons: env.Buttons, Default: stringFromWire(env.Default)}, nil
	default:
		return nil, fmt.Errorf("assistant: unknown element kind %q", env.Kind)
	}
}

func wireSize(s Size) any {
	if s == "" {
		return nil
	}
	return string(s)
}

func wireDefault(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func sizeFromWire(v any) Size {
	s, _ := v.(string)
	return Size(s)
}

func stringFromWire(v any) string {
	s, _ := v.(string)
	return s
}

func boolFromWire(v any) bool {
	b, _ := v.(bool)
	return b
}

// intFromWire accepts the integer shapes the two decoders produce:
// float64 from JSON, int from YAML.
func intFromWire(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
