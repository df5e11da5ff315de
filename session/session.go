// Package session runs one question/response cycle: it stages a
// declared element sequence, waits for a rendering surface to fetch it,
// collects the submitted result record, and resolves the blocked caller
// with either the record or a failure. One session serves exactly one
// form and is discarded afterwards.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"assistant"
	"assistant/bridge"
)

// Failure modes of one dialog invocation. They are distinct outcomes:
// a timeout or a surface closed mid-form is never reported as an empty
// success.
var (
	ErrTimedOut = errors.New("session: timed out awaiting result")
	ErrCanceled = errors.New("session: surface closed before submitting")
	ErrClosed   = errors.New("session: closed")
	ErrNotReady = errors.New("session: no elements served yet")
)

// State tracks where a session is in its lifecycle.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingReady  State = "awaiting-ready"
	StateAwaitingResult State = "awaiting-result"
	StateCompleted      State = "completed"
	StateFailed         State = "failed"
)

// Opener opens a path with the platform-default handler.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// PickRequest carries the declared picker constraints of one file
// input to a native file dialog.
type PickRequest struct {
	Name      string
	Multiple  bool
	Source    string
	FileTypes []string
}

// Picker presents a native file dialog. An empty path list means the
// user cancelled.
type Picker interface {
	Pick(ctx context.Context, req PickRequest) ([]string, error)
}

// Config carries the per-session policy supplied by the caller.
type Config struct {
	// Timeout bounds the whole cycle from Wait onwards. Zero waits
	// forever.
	Timeout time.Duration

	// Validators run host-side against the submitted record, keyed by
	// input name. Any failure rejects the submit and keeps the session
	// open.
	Validators map[string]assistant.Validator

	// Opener and Picker provide the native services surfaces request
	// over the bridge. Either may be nil; the operations then degrade
	// to logged no-ops.
	Opener Opener
	Picker Picker
}

// Session owns one form invocation end to end. It implements
// bridge.Host for the surface side while the calling automation blocks
// in Wait. The result channel is buffered so the surface's submit never
// blocks on the consumer; the done channel is closed exactly once at
// termination.
type Session struct {
	id        string
	createdAt time.Time
	elements  assistant.Elements
	cfg       Config

	mu         sync.Mutex
	state      State
	failure    error
	lastHeight int

	ready     chan struct{}
	readyOnce sync.Once

	resultCh  chan assistant.Result
	done      chan struct{}
	closeOnce sync.Once
}

var _ bridge.Host = (*Session)(nil)

// New stages a validated element sequence for one invocation. No new
// elements can join once the session exists.
func New(elements assistant.Elements, cfg Config) *Session {
	return &Session{
		id:        uuid.Must(uuid.NewV7()).String(),
		createdAt: time.Now(),
		elements:  append(assistant.Elements(nil), elements...),
		cfg:       cfg,
		state:     StateIdle,
		ready:     make(chan struct{}),
		resultCh:  make(chan assistant.Result, 1),
		done:      make(chan struct{}),
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// State returns the current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready is closed after the surface's first successful element fetch.
func (s *Session) Ready() <-chan struct{} { return s.ready }

// Done is closed when the session terminates, normally or not.
// Transports watch it to tear down their connection without needing
// the surface to cooperate.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err reports why the session failed, or nil while it is live or
// completed normally.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// LastHeight returns the most recent height report from the surface.
func (s *Session) LastHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeight
}

// Wait blocks the calling automation task until the surface submits a
// result, the configured timeout elapses, ctx is cancelled, or the
// session is closed from elsewhere. Failures come back as distinct
// errors, never as an empty record.
func (s *Session) Wait(ctx context.Context) (assistant.Result, error) {
	s.begin()

	var timeoutC <-chan time.Time
	if s.cfg.Timeout > 0 {
		timer := time.NewTimer(s.cfg.Timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case record := <-s.resultCh:
		s.Close(nil)
		return record, nil
	case <-timeoutC:
		s.Close(ErrTimedOut)
		return nil, ErrTimedOut
	case <-ctx.Done():
		s.Close(ctx.Err())
		return nil, ctx.Err()
	case <-s.done:
		// A submit racing the close still wins.
		select {
		case record := <-s.resultCh:
			return record, nil
		default:
		}
		if err := s.Err(); err != nil {
			return nil, err
		}
		return nil, ErrClosed
	}
}

// Close terminates the session. A nil reason is a normal completion;
// anything else marks the session failed. Only the first close takes
// effect.
func (s *Session) Close(reason error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		if reason != nil && s.state != StateCompleted {
			s.state = StateFailed
			s.failure = reason
		}
		s.mu.Unlock()
		close(s.done)
		if reason != nil {
			log.Printf("session %s: closed: %v", s.id, reason)
		}
	})
}

// Elements serves the staged sequence to the surface. The first
// successful fetch is the session's readiness signal.
func (s *Session) Elements(context.Context) (assistant.Elements, error) {
	select {
	case <-s.done:
		return nil, ErrClosed
	default:
	}
	s.markReady()
	return append(assistant.Elements(nil), s.elements...), nil
}

// SubmitResult accepts the finalized record. A record can only arrive
// after the elements were fetched, and only once; validator failures
// reject it with per-field messages and leave the session awaiting a
// corrected submit.
func (s *Session) SubmitResult(_ context.Context, record assistant.Result) (bridge.SubmitAck, error) {
	select {
	case <-s.ready:
	default:
		return bridge.SubmitAck{}, ErrNotReady
	}
	select {
	case <-s.done:
		return bridge.SubmitAck{}, ErrClosed
	default:
	}

	if errs := s.runValidators(record); len(errs) > 0 {
		log.Printf("session %s: submit rejected, %d field(s) failed validation", s.id, len(errs))
		return bridge.SubmitAck{Accepted: false, FieldErrors: errs}, nil
	}

	select {
	case s.resultCh <- record:
		s.mu.Lock()
		s.state = StateCompleted
		s.mu.Unlock()
		log.Printf("session %s: result submitted via %q", s.id, record.String(assistant.SubmitKey))
		return bridge.SubmitAck{Accepted: true}, nil
	default:
		return bridge.SubmitAck{}, fmt.Errorf("session %s already received a result", s.id)
	}
}

// ReportHeight records the surface's rendered height for window sizing.
func (s *Session) ReportHeight(_ context.Context, px int) error {
	s.mu.Lock()
	s.lastHeight = px
	s.mu.Unlock()
	return nil
}

// OpenFile opens a path with the configured opener. Failures are
// logged, never surfaced to the form.
func (s *Session) OpenFile(ctx context.Context, path string) error {
	if s.cfg.Opener == nil {
		log.Printf("session %s: no opener configured, ignoring open of %q", s.id, path)
		return nil
	}
	if err := s.cfg.Opener.Open(ctx, path); err != nil {
		log.Printf("session %s: open %q failed: %v", s.id, path, err)
	}
	return nil
}

// OpenFileDialog runs the configured native picker with the constraints
// declared on the named file input. Without a picker, and on picker
// failure, the surface sees a cancelled dialog. An input declaring a
// destination directory gets the chosen files copied there; the copies
// are what the form reports.
func (s *Session) OpenFileDialog(ctx context.Context, name string) ([]string, error) {
	if s.cfg.Picker == nil {
		log.Printf("session %s: no file picker configured for %q", s.id, name)
		return nil, nil
	}
	fi, declared := s.fileInput(name)
	req := PickRequest{Name: name}
	if declared {
		req.Multiple = fi.Multiple
		req.Source = fi.Source
		req.FileTypes = append([]string(nil), fi.FileTypes...)
	}
	paths, err := s.cfg.Picker.Pick(ctx, req)
	if err != nil {
		log.Printf("session %s: file pick for %q failed: %v", s.id, name, err)
		return nil, nil
	}
	if declared && fi.Destination != "" && len(paths) > 0 {
		copied, err := copyInto(fi.Destination, paths)
		if err != nil {
			log.Printf("session %s: copy picks for %q to %q failed: %v", s.id, name, fi.Destination, err)
			return paths, nil
		}
		paths = copied
	}
	return paths, nil
}

func copyInto(dir string, paths []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		dst := filepath.Join(dir, filepath.Base(p))
		if err := copyFile(dst, p); err != nil {
			return nil, err
		}
		out = append(out, dst)
	}
	return out, nil
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (s *Session) begin() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.state = StateAwaitingReady
	}
	s.mu.Unlock()
}

func (s *Session) markReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		if s.state == StateIdle || s.state == StateAwaitingReady {
			s.state = StateAwaitingResult
		}
		s.mu.Unlock()
		close(s.ready)
	})
}

func (s *Session) runValidators(record assistant.Result) map[string]string {
	if len(s.cfg.Validators) == 0 {
		return nil
	}
	errs := make(map[string]string)
	for name, check := range s.cfg.Validators {
		if err := check(record[name]); err != nil {
			errs[name] = err.Error()
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *Session) fileInput(name string) (assistant.FileInput, bool) {
	for _, el := range s.elements {
		if fi, ok := el.(assistant.FileInput); ok && fi.Name == name {
			return fi, true
		}
	}
	return assistant.FileInput{}, false
}
