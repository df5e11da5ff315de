// Package ask is the blocking entry point automation code calls to show
// a dialog form and collect the submitted values. It wires a declared
// dialog to an in-process session and a rendering surface, blocks the
// caller while the user fills the form, and returns the result record.
// By default the form appears in the controlling terminal.
package ask

import (
	"context"
	"fmt"
	"os"
	"time"

	"assistant"
	"assistant/bridge"
	"assistant/internal/platform"
	"assistant/internal/term"
	"assistant/session"
	"assistant/surface"
)

type options struct {
	title    string
	timeout  time.Duration
	frontend surface.Frontend
	opener   session.Opener
	picker   session.Picker
}

// Option adjusts one Run invocation.
type Option func(*options)

// WithTitle sets the title line shown above the form.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithTimeout bounds how long Run waits for a submission. Zero waits
// forever.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithFrontend replaces the default terminal surface. The frontend is
// driven by the surface run loop; if it also exposes a blocking
// Run() error, Run calls it and treats its return as the user leaving
// the surface.
func WithFrontend(fe surface.Frontend) Option {
	return func(o *options) { o.frontend = fe }
}

// WithOpener replaces the platform-default file opener.
func WithOpener(op session.Opener) Option {
	return func(o *options) { o.opener = op }
}

// WithPicker replaces the native file picker.
func WithPicker(p session.Picker) Option {
	return func(o *options) { o.picker = p }
}

// Run shows the dialog and blocks until the user submits it, the
// timeout elapses, ctx is cancelled, or the surface is closed without
// a submission. The returned record maps every input name to its final
// value plus the pressed button under assistant.SubmitKey. Failures
// come back as the session package's sentinel errors, never as an
// empty record.
func Run(ctx context.Context, d *assistant.Dialog, opts ...Option) (assistant.Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.opener == nil {
		o.opener = platform.NewOpener()
	}
	if o.picker == nil {
		o.picker = platform.NewPicker(os.Getenv("ASSISTANT_PICKER"))
	}

	sess := session.New(d.Elements(), session.Config{
		Timeout:    o.timeout,
		Validators: d.Validators(),
		Opener:     o.opener,
		Picker:     o.picker,
	})

	fe := o.frontend
	if fe == nil {
		fe = term.New(o.title)
	}

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- surface.Run(ctx, bridge.NewLocal(sess), fe)
	}()

	type waited struct {
		record assistant.Result
		err    error
	}
	waitCh := make(chan waited, 1)
	go func() {
		record, err := sess.Wait(ctx)
		waitCh <- waited{record, err}
	}()

	// A terminal frontend owns the screen and must run on this
	// goroutine. When it quits, release the session so Wait settles;
	// a completed session ignores the close.
	if runner, ok := fe.(interface{ Run() error }); ok {
		err := runner.Run()
		sess.Close(session.ErrCanceled)
		if err != nil {
			return nil, fmt.Errorf("ask: surface: %w", err)
		}
	}

	surfaceErr := <-loopErr
	sess.Close(session.ErrCanceled)

	out := <-waitCh
	if out.err != nil {
		return nil, out.err
	}
	if surfaceErr != nil {
		return nil, surfaceErr
	}
	return out.record, nil
}
