package registry

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"assistant"
	"assistant/bridge"
	"assistant/session"
)

func newRegistry(t *testing.T, retention time.Duration) *Registry {
	t.Helper()
	reg, err := New(4, retention)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return reg
}

func stage(t *testing.T, reg *Registry, elements assistant.Elements) *session.Session {
	t.Helper()
	sess := session.New(elements, session.Config{Timeout: 5 * time.Second})
	reg.Stage(sess, assistant.InputNames(elements))
	return sess
}

func loginElements() assistant.Elements {
	return assistant.Elements{
		assistant.TextInput{Name: "username", Label: "User"},
		assistant.Submit{Buttons: []string{"OK"}, Default: "OK"},
	}
}

// submitThrough drives the surface side of the session over the local
// binding until the record is accepted.
func submitThrough(t *testing.T, sess *session.Session, fill func(assistant.Result) assistant.Result) {
	t.Helper()
	go func() {
		client := bridge.NewLocal(sess)
		els, err := client.GetElements(context.Background())
		if err != nil {
			return
		}
		record := fill(assistant.Seed(els)).Finalize("OK")
		_, _ = client.SetResult(context.Background(), record)
	}()
}

func TestRegistry_OutcomeDeliversSubmittedRecord(t *testing.T) {
	reg := newRegistry(t, time.Second)
	sess := stage(t, reg, loginElements())
	submitThrough(t, sess, func(r assistant.Result) assistant.Result {
		return r.Update("username", "alice")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	out, err := reg.Outcome(ctx, sess.ID())
	if err != nil {
		t.Fatalf("Outcome() error = %v", err)
	}
	if out.Err != nil {
		t.Fatalf("Outcome() session error = %v", out.Err)
	}
	if got := out.Record.String("username"); got != "alice" {
		t.Fatalf("Record[username] = %q, want alice", got)
	}
	if out.State != string(session.StateCompleted) {
		t.Fatalf("State = %q, want %q", out.State, session.StateCompleted)
	}
}

func TestRegistry_FinishedSessionLandsInRecent(t *testing.T) {
	reg := newRegistry(t, time.Second)
	sess := stage(t, reg, loginElements())
	submitThrough(t, sess, func(r assistant.Result) assistant.Result {
		return r.Update("username", "alice")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := reg.Outcome(ctx, sess.ID()); err != nil {
		t.Fatalf("Outcome() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for {
		snap := reg.Snapshot()
		if len(snap.Recent) == 1 {
			got := snap.Recent[0]
			if got.ID != sess.ID() {
				t.Fatalf("Recent[0].ID = %q, want %q", got.ID, sess.ID())
			}
			if got.State != string(session.StateCompleted) {
				t.Fatalf("Recent[0].State = %q", got.State)
			}
			if len(got.Fields) != 1 || got.Fields[0] != "username" {
				t.Fatalf("Recent[0].Fields = %v, want [username]", got.Fields)
			}
			if got.Error != "" {
				t.Fatalf("Recent[0].Error = %q, want empty", got.Error)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("finished session never archived, snapshot = %+v", snap)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegistry_LookupMissesAfterClaim(t *testing.T) {
	reg := newRegistry(t, time.Second)
	sess := stage(t, reg, loginElements())
	sess.Close(session.ErrCanceled)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	out, err := reg.Outcome(ctx, sess.ID())
	if err != nil {
		t.Fatalf("Outcome() error = %v", err)
	}
	if !errors.Is(out.Err, session.ErrCanceled) {
		t.Fatalf("Outcome().Err = %v, want ErrCanceled", out.Err)
	}

	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := reg.Session(sess.ID()); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("claimed session still resolvable")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, err := reg.Outcome(context.Background(), sess.ID()); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("Outcome() after claim error = %v, want ErrUnknownSession", err)
	}
}

func TestRegistry_RetentionExpiresUnclaimedOutcome(t *testing.T) {
	reg := newRegistry(t, 10*time.Millisecond)
	sess := stage(t, reg, loginElements())
	sess.Close(session.ErrCanceled)

	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := reg.Session(sess.ID()); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("unclaimed session never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	snap := reg.Snapshot()
	if len(snap.Recent) != 1 {
		t.Fatalf("Recent = %+v, want the expired session's summary", snap.Recent)
	}
	if snap.Recent[0].Error != session.ErrCanceled.Error() {
		t.Fatalf("Recent[0].Error = %q, want %q", snap.Recent[0].Error, session.ErrCanceled)
	}
}

func TestRegistry_OutcomeUnknownSession(t *testing.T) {
	reg := newRegistry(t, time.Second)
	if _, err := reg.Outcome(context.Background(), "nope"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("Outcome() error = %v, want ErrUnknownSession", err)
	}
	if _, ok := reg.Session(""); ok {
		t.Fatalf("Session(\"\") resolved")
	}
}

func TestRegistry_SnapshotNeverCarriesSubmittedValues(t *testing.T) {
	reg := newRegistry(t, time.Second)
	elements := assistant.Elements{
		assistant.TextInput{Name: "username", Label: "User"},
		assistant.PasswordInput{Name: "passphrase", Label: "Passphrase"},
		assistant.Submit{Buttons: []string{"OK"}, Default: "OK"},
	}
	sess := stage(t, reg, elements)
	submitThrough(t, sess, func(r assistant.Result) assistant.Result {
		return r.Update("username", "alice").Update("passphrase", "hunter2")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	out, err := reg.Outcome(ctx, sess.ID())
	if err != nil {
		t.Fatalf("Outcome() error = %v", err)
	}
	if got := out.Record.String("passphrase"); got != "hunter2" {
		t.Fatalf("Record[passphrase] = %q, the outcome itself must keep the value", got)
	}

	deadline := time.Now().Add(time.Second)
	for {
		snap := reg.Snapshot()
		if len(snap.Recent) == 1 {
			data, err := json.Marshal(snap)
			if err != nil {
				t.Fatalf("Marshal(snapshot) error = %v", err)
			}
			if strings.Contains(string(data), "hunter2") || strings.Contains(string(data), "alice") {
				t.Fatalf("snapshot leaks submitted values: %s", data)
			}
			if fields := snap.Recent[0].Fields; len(fields) != 2 || fields[0] != "username" || fields[1] != "passphrase" {
				t.Fatalf("Recent[0].Fields = %v", fields)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("finished session never archived")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
