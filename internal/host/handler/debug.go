package handler

import (
	"encoding/json"
	"net/http"

	"assistant/internal/host/registry"
)

type DebugHandler struct {
	reg *registry.Registry
}

func NewDebugHandler(reg *registry.Registry) *DebugHandler {
	return &DebugHandler{reg: reg}
}

func (h *DebugHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.reg.Snapshot())
}

func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok": true,
	})
}
