package surface

import (
	"context"
	"errors"
	"log"
	"time"

	"assistant/bridge"
	"assistant/render"
)

var (
	// ErrClosed reports that the user dismissed the surface before a
	// result was accepted.
	ErrClosed = errors.New("surface: closed before submitting")

	// ErrDisconnected reports that the host connection ended while the
	// form was still open.
	ErrDisconnected = errors.New("surface: lost connection to host")
)

// loadRetryEvery paces element fetch retries while the host has
// nothing staged yet.
const loadRetryEvery = 500 * time.Millisecond

type pickOutcome struct {
	name  string
	paths []string
	err   error
}

// Run drives fe against the host behind client until the form is
// submitted and accepted, the user closes the surface, or the host
// goes away. Every user action re-renders the whole component tree.
// Run returns nil only for an accepted submit.
func Run(ctx context.Context, client bridge.Client, fe Frontend) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := render.New(client)

	var hostGone <-chan struct{}
	if dn, ok := client.(interface{ Done() <-chan struct{} }); ok {
		hostGone = dn.Done()
	}

	redraw := func() {
		fe.Render(r.Components())
		r.ReportHeight(ctx)
	}

	if err := r.Load(ctx); err != nil {
		log.Printf("surface: initial element fetch failed: %v", err)
	}
	if r.Loading() {
		fe.Loading()
	} else {
		redraw()
	}

	retry := time.NewTicker(loadRetryEvery)
	defer retry.Stop()

	picks := make(chan pickOutcome)

	for {
		select {
		case <-ctx.Done():
			fe.Close()
			return ctx.Err()

		case <-hostGone:
			fe.Close()
			return ErrDisconnected

		case <-retry.C:
			if !r.Loading() {
				continue
			}
			if err := r.Load(ctx); err != nil {
				log.Printf("surface: element fetch failed: %v", err)
				continue
			}
			if !r.Loading() {
				redraw()
			}

		case out := <-picks:
			r.CompletePick(out.name, out.paths, out.err)
			redraw()

		case ev, ok := <-fe.Events():
			if !ok {
				return ErrClosed
			}
			switch ev := ev.(type) {
			case SetValue:
				r.SetValue(ev.Name, ev.Value)
				redraw()
			case Submit:
				if r.Submit(ctx, ev.Button) {
					fe.Close()
					return nil
				}
				redraw()
			case OpenFile:
				r.OpenFile(ctx, ev.Path)
			case PickFiles:
				if !r.BeginPick(ev.Name) {
					continue
				}
				redraw()
				go func(name string) {
					paths, err := client.OpenFileDialog(ctx, name)
					select {
					case picks <- pickOutcome{name: name, paths: paths, err: err}:
					case <-ctx.Done():
					}
				}(ev.Name)
			case Closed:
				return ErrClosed
			}
		}
	}
}
