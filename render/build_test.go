package render

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/sebdah/goldie/v2"

	"assistant"
)

func fullForm() assistant.Elements {
	return assistant.Elements{
		assistant.Heading{Value: "Deployment", Size: assistant.SizeLarge},
		assistant.Text{Value: "Release checklist below.\nReview before deploying.", Size: assistant.SizeSmall},
		assistant.Link{Value: "https://ci.example.com", Label: "Pipeline"},
		assistant.Image{Value: "/tmp/burndown.png", Width: 320, Height: 200},
		assistant.File{Value: "/tmp/last-release.log", Label: "Previous log"},
		assistant.Icon{Variant: assistant.IconWarning, Size: 32},
		assistant.TextInput{Name: "username", Label: "User name", Placeholder: "jane.doe"},
		assistant.PasswordInput{Name: "token", Label: "Deploy token"},
		assistant.HiddenInput{Name: "run_id", Value: "42"},
		assistant.FileInput{Name: "artifacts", Label: "Artifacts", FileTypes: []string{"zip"}, Multiple: true},
		assistant.DropDown{Name: "env", Options: []string{"dev", "stage", "prod"}, Default: "dev", Label: "Environment"},
		assistant.RadioButtons{Name: "strategy", Options: []string{"rolling", "all-at-once"}, Label: "Strategy"},
		assistant.Checkbox{Name: "notify", Label: "Notify the team", Default: true},
		assistant.Submit{Buttons: []string{"Cancel", "Deploy"}, Default: "Deploy"},
	}
}

func TestBuild_FullFormGolden(t *testing.T) {
	elements := fullForm()
	store := assistant.Seed(elements).Update("username", "alice")

	comps := Build(elements, store)

	data, err := json.MarshalIndent(comps, "", "  ")
	if err != nil {
		t.Fatalf("marshal components: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "full_form", data)
}

func TestBuild_RerenderAfterUpdateGolden(t *testing.T) {
	elements := fullForm()
	store := assistant.Seed(elements).
		Update("username", "alice").
		Update("env", "prod").
		Update("strategy", "all-at-once")

	comps := Build(elements, store)

	data, err := json.MarshalIndent(comps, "", "  ")
	if err != nil {
		t.Fatalf("marshal components: %v", err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "full_form_updated", data)
}

func TestBuild_IsPure(t *testing.T) {
	elements := fullForm()
	store := assistant.Seed(elements)

	first := Build(elements, store)
	second := Build(elements, store)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two builds of the same inputs differ")
	}
}

func TestBuild_SkipsHiddenInput(t *testing.T) {
	elements := assistant.Elements{
		assistant.HiddenInput{Name: "index", Value: "3"},
		assistant.Submit{Buttons: []string{"Next"}},
	}
	store := assistant.Seed(elements)

	comps := Build(elements, store)

	if len(comps) != 1 {
		t.Fatalf("components = %d, want the submit row only", len(comps))
	}
	if comps[0].Kind != ComponentSubmitRow {
		t.Fatalf("kind = %q, want %q", comps[0].Kind, ComponentSubmitRow)
	}
	if got := store.String("index"); got != "3" {
		t.Fatalf("hidden value = %q, want stored default", got)
	}
}

func TestBuild_WiresValuesFromStore(t *testing.T) {
	elements := assistant.Elements{
		assistant.TextInput{Name: "username"},
		assistant.Checkbox{Name: "ok", Label: "OK", Default: false},
		assistant.FileInput{Name: "files"},
	}
	store := assistant.Seed(elements).
		Update("username", "alice").
		Update("ok", true).
		Update("files", []string{"/tmp/a.txt", "/tmp/b.txt"})

	comps := Build(elements, store)

	if got := comps[0].TextField.Value; got != "alice" {
		t.Fatalf("text value = %q", got)
	}
	if !comps[1].Checkbox.Checked {
		t.Fatalf("checkbox should reflect updated store")
	}
	if got := comps[2].FilePicker.Paths; len(got) != 2 {
		t.Fatalf("picker paths = %v", got)
	}
}

func TestApplyFieldErrors_AttachesWithoutMutating(t *testing.T) {
	elements := assistant.Elements{
		assistant.TextInput{Name: "username"},
		assistant.Checkbox{Name: "accept", Label: "Accept", Default: false},
	}
	store := assistant.Seed(elements)
	comps := Build(elements, store)

	flagged := ApplyFieldErrors(comps, map[string]string{
		"username": "required",
		"missing":  "never shown",
	})

	if got := flagged[0].TextField.Error; got != "required" {
		t.Fatalf("error = %q, want %q", got, "required")
	}
	if comps[0].TextField.Error != "" {
		t.Fatalf("original tree was mutated")
	}
	if flagged[1].Checkbox.Error != "" {
		t.Fatalf("unrelated input picked up an error")
	}
}
