package assistant

// Validator checks one submitted input value. A non-nil error blocks
// finalization and is shown inline next to the offending element.
type Validator func(value any) error

type elementOptions struct {
	label       string
	placeholder string
	rows        int
	size        Size
	def         string
	defSet      bool
	source      string
	destination string
	fileTypes   []string
	width       int
	height      int
	validator   Validator
}

// Option adjusts one declared element. Options that do not apply to the
// element being added are ignored.
type Option func(*elementOptions)

func applyOptions(opts []Option) elementOptions {
	var o elementOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLabel sets the caption shown next to an element.
func WithLabel(label string) Option {
	return func(o *elementOptions) { o.label = label }
}

// WithPlaceholder sets the hint text shown in an empty field.
func WithPlaceholder(placeholder string) Option {
	return func(o *elementOptions) { o.placeholder = placeholder }
}

// WithRows renders a text input as a multi-line area of the given
// height.
func WithRows(rows int) Option {
	return func(o *elementOptions) { o.rows = rows }
}

// WithSize scales a heading or text block.
func WithSize(size Size) Option {
	return func(o *elementOptions) { o.size = size }
}

// WithDefault preselects an option or submit button by label.
func WithDefault(value string) Option {
	return func(o *elementOptions) {
		o.def = value
		o.defSet = true
	}
}

// WithSource sets the directory a file picker opens in.
func WithSource(dir string) Option {
	return func(o *elementOptions) { o.source = dir }
}

// WithDestination sets the directory picked files are copied to.
func WithDestination(dir string) Option {
	return func(o *elementOptions) { o.destination = dir }
}

// WithFileTypes restricts a file picker to the given extensions, e.g.
// "pdf", "xlsx".
func WithFileTypes(types ...string) Option {
	return func(o *elementOptions) { o.fileTypes = append([]string(nil), types...) }
}

// WithWidth sets an image's display width in pixels.
func WithWidth(px int) Option {
	return func(o *elementOptions) { o.width = px }
}

// WithHeight sets an image's display height in pixels.
func WithHeight(px int) Option {
	return func(o *elementOptions) { o.height = px }
}

// WithValidator attaches a submit-time check to an input. Failing
// validation keeps the form open with the error shown inline.
func WithValidator(fn Validator) Option {
	return func(o *elementOptions) { o.validator = fn }
}
