package render

import (
	"strings"

	"assistant"
)

// Fixed extents, in pixels, of the window-sizing model. The host resizes
// its window to the reported total, so the numbers only need to be
// stable and roughly proportional, not pixel-perfect for any one
// surface.
const (
	framePadding  = 16
	rowGap        = 8
	lineHeight    = 24
	labelHeight   = 20
	fieldHeight   = 36
	fileRowHeight = 28
	optionHeight  = 24
	errorHeight   = 20
	submitHeight  = 48
	imageFallback = 240
	loadingHeight = 120
	headingSmall  = 28
	headingMedium = 36
	headingLarge  = 48
)

// Height sums the tree's extent including frame padding and row gaps.
// The renderer reports it after every rebuild.
func Height(comps []Component) int {
	if len(comps) == 0 {
		return loadingHeight
	}
	total := 2*framePadding + rowGap*(len(comps)-1)
	for _, c := range comps {
		total += componentHeight(c)
	}
	return total
}

func componentHeight(c Component) int {
	switch c.Kind {
	case ComponentHeading:
		switch c.Heading.Size {
		case assistant.SizeSmall:
			return headingSmall
		case assistant.SizeLarge:
			return headingLarge
		default:
			return headingMedium
		}
	case ComponentText:
		lines := strings.Count(c.Text.Text, "\n") + 1
		return lines * lineHeight
	case ComponentLink:
		return lineHeight
	case ComponentImage:
		if c.Image.Height > 0 {
			return c.Image.Height
		}
		return imageFallback
	case ComponentFile:
		return fileRowHeight
	case ComponentIcon:
		return c.Icon.Size
	case ComponentTextField:
		h := rows(c.TextField.Rows)*fieldHeight + optionalLabel(c.TextField.Label)
		return h + optionalError(c.TextField.Error)
	case ComponentFilePicker:
		h := fieldHeight + optionalLabel(c.FilePicker.Label)
		h += len(c.FilePicker.Paths) * fileRowHeight
		return h + optionalError(c.FilePicker.Error)
	case ComponentSelect:
		h := fieldHeight + optionalLabel(c.Select.Label)
		return h + optionalError(c.Select.Error)
	case ComponentRadioGroup:
		h := len(c.RadioGroup.Options)*optionHeight + optionalLabel(c.RadioGroup.Label)
		return h + optionalError(c.RadioGroup.Error)
	case ComponentCheckbox:
		return fileRowHeight + optionalError(c.Checkbox.Error)
	case ComponentSubmitRow:
		return submitHeight
	default:
		return lineHeight
	}
}

func rows(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func optionalLabel(label string) int {
	if label == "" {
		return 0
	}
	return labelHeight
}

func optionalError(msg string) int {
	if msg == "" {
		return 0
	}
	return errorHeight
}
