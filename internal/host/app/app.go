package app

import (
	"context"
	"fmt"

	"assistant/internal/host/config"
	"assistant/internal/host/handler"
	"assistant/internal/host/registry"
	"assistant/internal/host/server"
	"assistant/internal/platform"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := registry.New(cfg.RecentSessions, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to build session registry: %w", err)
	}

	dialogs := handler.NewDialogHandler(reg, cfg.SessionTimeout, platform.NewOpener(), platform.NewPicker(cfg.PickerCommand))
	debug := handler.NewDebugHandler(reg)

	mux := server.NewMux(dialogs, debug)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
