package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"assistant"
	"assistant/bridge"
	"assistant/internal/decl"
	"assistant/internal/host/registry"
	"assistant/session"
)

// DialogHandler owns the dialog lifecycle endpoints and the bridge
// websocket surfaces attach to.
type DialogHandler struct {
	reg            *registry.Registry
	defaultTimeout time.Duration
	opener         session.Opener
	picker         session.Picker
	upgrader       websocket.Upgrader
}

func NewDialogHandler(reg *registry.Registry, defaultTimeout time.Duration, opener session.Opener, picker session.Picker) *DialogHandler {
	return &DialogHandler{
		reg:            reg,
		defaultTimeout: defaultTimeout,
		opener:         opener,
		picker:         picker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Surfaces are local processes, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *DialogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}
	f, err := decl.ParseJSON(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := f.ToDialog()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	timeout := f.SessionTimeout()
	if timeout <= 0 {
		timeout = h.defaultTimeout
	}
	sess := session.New(d.Elements(), session.Config{
		Timeout:    timeout,
		Validators: d.Validators(),
		Opener:     h.opener,
		Picker:     h.picker,
	})
	h.reg.Stage(sess, assistant.InputNames(d.Elements()))
	log.Printf("dialog %s: staged with %d elements (timeout %s)", sess.ID(), len(d.Elements()), timeout)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     sess.ID(),
		"state":  string(sess.State()),
		"bridge": "/bridge?session=" + sess.ID(),
	})
}

func (h *DialogHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	out, err := h.reg.Outcome(r.Context(), id)
	if errors.Is(err, registry.ErrUnknownSession) {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if err != nil {
		// Poller went away before the session finished.
		return
	}

	resp := map[string]any{
		"id":    id,
		"state": out.State,
	}
	if out.Err != nil {
		resp["error"] = out.Err.Error()
	} else {
		resp["result"] = out.Record
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *DialogHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	sess, ok := h.reg.Session(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	sess.Close(session.ErrCanceled)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     id,
		"closed": true,
	})
}

func (h *DialogHandler) HandleBridge(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("session"))
	if id == "" {
		http.Error(w, "session is required", http.StatusBadRequest)
		return
	}
	sess, ok := h.reg.Session(id)
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("bridge %s: upgrade: %v", id, err)
		return
	}
	defer conn.Close()

	// Kick the surface loose when the session ends first.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-sess.Done():
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			_ = conn.Close()
		case <-stop:
		}
	}()

	bridge.ServeWS(r.Context(), conn, sess)
}
