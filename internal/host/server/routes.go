package server

import (
	"net/http"

	"assistant/internal/host/handler"
)

func NewMux(dialogs *handler.DialogHandler, debug *handler.DebugHandler) http.Handler {
	mux := http.NewServeMux()

	// Dialog lifecycle
	mux.HandleFunc("/api/v1/dialogs", dialogs.HandleCreate)
	mux.HandleFunc("/api/v1/dialogs/result", dialogs.HandleResult)
	mux.HandleFunc("/api/v1/dialogs/close", dialogs.HandleClose)

	// Surface attachment
	mux.HandleFunc("/bridge", dialogs.HandleBridge)

	// Debug Handlers
	mux.HandleFunc("/debug/sessions", debug.HandleSessions)
	mux.HandleFunc("/healthz", handler.HandleHealthz)

	return mux
}
