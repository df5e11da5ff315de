// Package bridge is the request/response contract between a headless
// dialog host and the rendering surface showing its form. The two run
// as asynchronous peers: the surface pulls the declared elements, pushes
// value changes back as a final result record, and asks the host for
// native services it cannot provide itself (opening files, native file
// pickers, window sizing).
//
// Surfaces always talk through a Client. When no host peer exists, Nop
// stands in and every call degrades to an empty result, which keeps the
// rendering code runnable in previews and tests.
package bridge

import (
	"context"

	"assistant"
)

// Op names one bridge operation on the wire.
type Op string

const (
	OpGetElements    Op = "getElements"
	OpSetResult      Op = "setResult"
	OpSetHeight      Op = "setHeight"
	OpOpenFile       Op = "openFile"
	OpOpenFileDialog Op = "openFileDialog"
)

// SubmitAck reports whether a submitted record was accepted. A rejected
// submit carries per-field validation messages; the session stays open
// and the surface is expected to redisplay the form with them.
type SubmitAck struct {
	Accepted    bool              `json:"accepted"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Client is the surface's side of the bridge.
type Client interface {
	// GetElements fetches the declared element sequence. An empty
	// sequence means the host has nothing to show yet; surfaces stay in
	// their loading state and retry.
	GetElements(ctx context.Context) (assistant.Elements, error)

	// SetResult delivers the finalized record. An accepted ack ends the
	// interactive cycle.
	SetResult(ctx context.Context, record assistant.Result) (SubmitAck, error)

	// SetHeight reports the rendered height in pixels so the host can
	// size its window. Idempotent and best-effort.
	SetHeight(ctx context.Context, px int) error

	// OpenFile asks the host to open a path with the platform-default
	// handler.
	OpenFile(ctx context.Context, path string) error

	// OpenFileDialog asks the host to run its native file picker for
	// the named file input. An empty list means the user cancelled.
	OpenFileDialog(ctx context.Context, name string) ([]string, error)
}

// Host is the host's side of the bridge, served to exactly one surface
// per dialog session.
type Host interface {
	Elements(ctx context.Context) (assistant.Elements, error)
	SubmitResult(ctx context.Context, record assistant.Result) (SubmitAck, error)
	ReportHeight(ctx context.Context, px int) error
	OpenFile(ctx context.Context, path string) error
	OpenFileDialog(ctx context.Context, name string) ([]string, error)
}

// Nop is the client used when no host peer is attached. Every call
// succeeds with an empty result.
type Nop struct{}

var _ Client = Nop{}

func (Nop) GetElements(context.Context) (assistant.Elements, error) { return nil, nil }

func (Nop) SetResult(context.Context, assistant.Result) (SubmitAck, error) {
	return SubmitAck{Accepted: true}, nil
}

func (Nop) SetHeight(context.Context, int) error { return nil }

func (Nop) OpenFile(context.Context, string) error { return nil }

func (Nop) OpenFileDialog(context.Context, string) ([]string, error) { return nil, nil }
