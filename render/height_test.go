package render

import (
	"testing"

	"assistant"
)

func TestHeight_LoadingFrame(t *testing.T) {
	if got := Height(nil); got != loadingHeight {
		t.Fatalf("empty tree height = %d, want loading frame %d", got, loadingHeight)
	}
}

func TestHeight_CountsTextLines(t *testing.T) {
	one := Build(assistant.Elements{assistant.Text{Value: "a", Size: assistant.SizeMedium}}, nil)
	three := Build(assistant.Elements{assistant.Text{Value: "a\nb\nc", Size: assistant.SizeMedium}}, nil)

	diff := Height(three) - Height(one)
	if diff != 2*lineHeight {
		t.Fatalf("three lines add %d px, want %d", diff, 2*lineHeight)
	}
}

func TestHeight_UsesDeclaredImageHeight(t *testing.T) {
	sized := Build(assistant.Elements{assistant.Image{Value: "x.png", Height: 80}}, nil)
	natural := Build(assistant.Elements{assistant.Image{Value: "x.png"}}, nil)

	if got := Height(sized) - 2*framePadding; got != 80 {
		t.Fatalf("sized image height = %d, want 80", got)
	}
	if got := Height(natural) - 2*framePadding; got != imageFallback {
		t.Fatalf("natural image height = %d, want fallback %d", got, imageFallback)
	}
}

func TestHeight_GrowsWithInlineErrors(t *testing.T) {
	elements := assistant.Elements{assistant.TextInput{Name: "username"}}
	store := assistant.Seed(elements)
	comps := Build(elements, store)

	plain := Height(comps)
	flagged := Height(ApplyFieldErrors(comps, map[string]string{"username": "required"}))

	if flagged-plain != errorHeight {
		t.Fatalf("error adds %d px, want %d", flagged-plain, errorHeight)
	}
}

func TestHeight_GrowsWithPickedPaths(t *testing.T) {
	elements := assistant.Elements{assistant.FileInput{Name: "files", Multiple: true}}

	empty := Height(Build(elements, assistant.Seed(elements)))
	two := Height(Build(elements, assistant.Seed(elements).Update("files", []string{"/a", "/b"})))

	if two-empty != 2*fileRowHeight {
		t.Fatalf("two paths add %d px, want %d", two-empty, 2*fileRowHeight)
	}
}
