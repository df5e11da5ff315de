// Package registry tracks the dialog sessions a host has staged. Live
// sessions are held until their outcome is claimed; finished sessions
// leave behind a bounded trail of summaries for the debug surface.
// Summaries carry the form's shape (input names), never submitted
// values.
package registry

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"assistant"
	"assistant/session"
)

// DefaultRetention bounds how long an unclaimed outcome stays
// addressable after the session finishes.
const DefaultRetention = 5 * time.Minute

var ErrUnknownSession = errors.New("registry: unknown session")

// Summary is what survives of a finished session.
type Summary struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	FinishedAt time.Time `json:"finished_at"`
	Fields     []string  `json:"fields,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// ActiveSession describes a session still waiting on its surface.
type ActiveSession struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	Fields     []string  `json:"fields,omitempty"`
	LastHeight int       `json:"last_height,omitempty"`
}

// Outcome is a finished session's delivery: the submitted record on
// success, the session error otherwise.
type Outcome struct {
	State  string
	Record assistant.Result
	Err    error
}

type Snapshot struct {
	Active []ActiveSession `json:"active"`
	Recent []Summary       `json:"recent"`
}

type entry struct {
	sess   *session.Session
	fields []string

	fin       chan struct{}
	claimed   chan struct{}
	claimOnce sync.Once

	out Outcome
}

type Registry struct {
	retention time.Duration

	mu     sync.RWMutex
	active map[string]*entry
	recent *lru.Cache[string, Summary]
}

func New(recentSize int, retention time.Duration) (*Registry, error) {
	if recentSize <= 0 {
		recentSize = 128
	}
	cache, err := lru.New[string, Summary](recentSize)
	if err != nil {
		return nil, err
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Registry{
		retention: retention,
		active:    make(map[string]*entry),
		recent:    cache,
	}, nil
}

// Stage registers the session and starts the host-side wait. The
// session's timeout runs from here, not from the first surface attach.
func (r *Registry) Stage(sess *session.Session, fields []string) string {
	e := &entry{
		sess:    sess,
		fields:  append([]string(nil), fields...),
		fin:     make(chan struct{}),
		claimed: make(chan struct{}),
	}
	r.mu.Lock()
	r.active[sess.ID()] = e
	r.mu.Unlock()
	go r.watch(e)
	return sess.ID()
}

// Session resolves a live session by id. Finished sessions stop
// resolving once their outcome has been claimed or has expired.
func (r *Registry) Session(id string) (*session.Session, bool) {
	e, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	return e.sess, true
}

// Outcome blocks until the session finishes, then hands out the result.
// The first claim starts the clock on forgetting the record; pollers
// arriving after removal get ErrUnknownSession and must consult the
// summary trail instead.
func (r *Registry) Outcome(ctx context.Context, id string) (Outcome, error) {
	e, ok := r.lookup(id)
	if !ok {
		return Outcome{}, ErrUnknownSession
	}
	select {
	case <-e.fin:
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
	e.claimOnce.Do(func() { close(e.claimed) })
	return e.out, nil
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	active := make([]ActiveSession, 0, len(r.active))
	for _, e := range r.active {
		active = append(active, ActiveSession{
			ID:         e.sess.ID(),
			State:      string(e.sess.State()),
			CreatedAt:  e.sess.CreatedAt(),
			Fields:     e.fields,
			LastHeight: e.sess.LastHeight(),
		})
	}
	r.mu.RUnlock()
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })

	keys := r.recent.Keys()
	recent := make([]Summary, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if s, ok := r.recent.Peek(keys[i]); ok {
			recent = append(recent, s)
		}
	}
	return Snapshot{Active: active, Recent: recent}
}

func (r *Registry) lookup(id string) (*entry, bool) {
	id = strings.TrimSpace(id)
	if r == nil || id == "" {
		return nil, false
	}
	r.mu.RLock()
	e, ok := r.active[id]
	r.mu.RUnlock()
	return e, ok
}

func (r *Registry) watch(e *entry) {
	record, err := e.sess.Wait(context.Background())
	e.out = Outcome{
		State:  string(e.sess.State()),
		Record: record,
		Err:    err,
	}
	close(e.fin)

	summary := Summary{
		ID:         e.sess.ID(),
		State:      e.out.State,
		CreatedAt:  e.sess.CreatedAt(),
		FinishedAt: time.Now(),
		Fields:     e.fields,
	}
	if err != nil {
		summary.Error = err.Error()
	}
	r.recent.Add(summary.ID, summary)

	// Hold the outcome for late pollers, then drop the entry so the
	// record does not outlive its delivery window.
	select {
	case <-e.claimed:
	case <-time.After(r.retention):
		log.Printf("session %s: outcome expired unclaimed", e.sess.ID())
	}
	r.mu.Lock()
	delete(r.active, e.sess.ID())
	r.mu.Unlock()
}
