package assistant

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDialog_DeclaresElementsInOrder(t *testing.T) {
	d := NewDialog()
	d.AddHeading("Deployment")
	d.AddText("Fill in the release details.")
	d.AddIcon(IconWarning, 0)
	if err := d.AddTextInput("version", WithLabel("Version"), WithPlaceholder("1.2.3")); err != nil {
		t.Fatalf("add text input: %v", err)
	}
	if err := d.AddCheckbox("dry_run", "Dry run only", true); err != nil {
		t.Fatalf("add checkbox: %v", err)
	}
	if err := d.AddSubmit([]string{"Cancel", "Deploy"}, WithDefault("Deploy")); err != nil {
		t.Fatalf("add submit: %v", err)
	}

	got := d.Elements()
	wantKinds := []Kind{KindHeading, KindText, KindIcon, KindTextInput, KindCheckbox, KindSubmit}
	if len(got) != len(wantKinds) {
		t.Fatalf("declared %d elements, want %d", len(got), len(wantKinds))
	}
	for i, el := range got {
		if el.Kind() != wantKinds[i] {
			t.Fatalf("element %d kind = %q, want %q", i, el.Kind(), wantKinds[i])
		}
	}

	icon, ok := got[2].(Icon)
	if !ok || icon.Size != 48 {
		t.Fatalf("icon = %#v, want size fallback 48", got[2])
	}
}

func TestDialog_RejectsEmptyName(t *testing.T) {
	d := NewDialog()
	if err := d.AddTextInput(""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}

func TestDialog_RejectsReservedName(t *testing.T) {
	d := NewDialog()
	if err := d.AddTextInput("submit"); !errors.Is(err, ErrReservedName) {
		t.Fatalf("err = %v, want ErrReservedName", err)
	}
}

func TestDialog_RejectsDuplicateName(t *testing.T) {
	d := NewDialog()
	if err := d.AddTextInput("username"); err != nil {
		t.Fatalf("first declaration: %v", err)
	}
	err := d.AddPasswordInput("username")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestDialog_RejectsDefaultOutsideOptions(t *testing.T) {
	d := NewDialog()
	if err := d.AddDropDown("env", []string{"dev", "prod"}, WithDefault("staging")); !errors.Is(err, ErrBadDefault) {
		t.Fatalf("drop-down err = %v, want ErrBadDefault", err)
	}
	if err := d.AddRadioButtons("region", []string{"eu"}, WithDefault("us")); !errors.Is(err, ErrBadDefault) {
		t.Fatalf("radio err = %v, want ErrBadDefault", err)
	}
	if err := d.AddSubmit([]string{"OK"}, WithDefault("Cancel")); !errors.Is(err, ErrBadDefault) {
		t.Fatalf("submit err = %v, want ErrBadDefault", err)
	}
}

func TestDialog_AllowsDefaultWhenOptionsEmpty(t *testing.T) {
	d := NewDialog()
	if err := d.AddDropDown("env", nil, WithDefault("later")); err != nil {
		t.Fatalf("err = %v, want default accepted while options are empty", err)
	}
}

func TestDialog_CollectsValidators(t *testing.T) {
	notEmpty := func(v any) error {
		if s, _ := v.(string); s == "" {
			return errors.New("required")
		}
		return nil
	}

	d := NewDialog()
	if err := d.AddTextInput("username", WithValidator(notEmpty)); err != nil {
		t.Fatalf("add username: %v", err)
	}
	if err := d.AddTextInput("comment"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	vs := d.Validators()
	if _, ok := vs["username"]; !ok {
		t.Fatalf("missing validator for username")
	}
	if _, ok := vs["comment"]; ok {
		t.Fatalf("unexpected validator for comment")
	}
}

func TestDialog_ClearAllowsReuse(t *testing.T) {
	d := NewDialog()
	if err := d.AddTextInput("username"); err != nil {
		t.Fatalf("add: %v", err)
	}

	d.Clear()

	if got := len(d.Elements()); got != 0 {
		t.Fatalf("elements after clear = %d, want 0", got)
	}
	if err := d.AddTextInput("username"); err != nil {
		t.Fatalf("redeclare after clear: %v", err)
	}
}

func TestDialog_AddFilesExpandsGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "skip.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	d := NewDialog()
	if err := d.AddFiles(filepath.Join(dir, "*.txt")); err != nil {
		t.Fatalf("add files: %v", err)
	}

	got := d.Elements()
	if len(got) != 2 {
		t.Fatalf("matched %d elements, want 2", len(got))
	}
	first, second := got[0].(File), got[1].(File)
	if filepath.Base(first.Value) != "a.txt" || filepath.Base(second.Value) != "b.txt" {
		t.Fatalf("files = %q, %q, want lexical order a.txt, b.txt", first.Value, second.Value)
	}
}

func TestNewDialogFromElements_ValidatesSequence(t *testing.T) {
	_, err := NewDialogFromElements([]Element{
		TextInput{Name: "username"},
		TextInput{Name: "username"},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}

	d, err := NewDialogFromElements([]Element{
		Heading{Value: "Login"},
		TextInput{Name: "username"},
		Submit{Buttons: []string{"OK"}},
	})
	if err != nil {
		t.Fatalf("valid sequence rejected: %v", err)
	}
	if got := len(d.Elements()); got != 3 {
		t.Fatalf("elements = %d, want 3", got)
	}
}
