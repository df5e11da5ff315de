// Package decl loads dialog declarations from YAML or JSON files so a
// form can be staged without writing Go. A declaration carries the
// element sequence plus optional session settings.
package decl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"assistant"
)

// Duration is a time.Duration that reads Go duration strings such as
// "90s" or "2m" from declaration files.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("decl: bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// File is a parsed dialog declaration.
type File struct {
	Title    string             `json:"title,omitempty" yaml:"title,omitempty"`
	Timeout  Duration           `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Elements assistant.Elements `json:"elements" yaml:"elements"`
}

// Load reads a declaration from disk. The extension picks the format;
// anything that is not .json parses as YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decl: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

// ParseYAML parses a YAML declaration. Unknown top-level fields are
// rejected so typos fail loudly.
func ParseYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("decl: parse yaml: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseJSON parses a JSON declaration.
func ParseJSON(data []byte) (*File, error) {
	var f File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("decl: parse json: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if len(f.Elements) == 0 {
		return fmt.Errorf("decl: no elements declared")
	}
	if f.Timeout < 0 {
		return fmt.Errorf("decl: negative timeout")
	}
	return nil
}

// ToDialog stages the declared elements, running the same name and
// default validation as the Go builder API. A declaration without a
// submit row gets a single Submit button appended so the dialog can
// complete.
func (f *File) ToDialog() (*assistant.Dialog, error) {
	elements := append(assistant.Elements(nil), f.Elements...)
	if !hasSubmit(elements) {
		elements = append(elements, assistant.Submit{Buttons: []string{"Submit"}})
	}
	return assistant.NewDialogFromElements(elements)
}

// SessionTimeout converts the declared timeout for session config.
// Zero means the caller's default applies.
func (f *File) SessionTimeout() time.Duration {
	return time.Duration(f.Timeout)
}

func hasSubmit(elements assistant.Elements) bool {
	for _, el := range elements {
		if el.Kind() == assistant.KindSubmit {
			return true
		}
	}
	return false
}
