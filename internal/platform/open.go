// Package platform runs the desktop integrations a dialog host needs:
// opening files with their default application and presenting a native
// file chooser. Everything shells out to the OS tools, so a headless
// host degrades to errors the session layer already tolerates.
package platform

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens files and URLs with the desktop's default handler.
type Opener struct{}

func NewOpener() *Opener { return &Opener{} }

func (Opener) Open(ctx context.Context, path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("platform: open %s: %w", path, err)
	}
	return nil
}

func openCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
