package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"assistant/session"
)

// Picker presents a native file chooser: zenity on Linux desktops,
// osascript on macOS. An explicit command overrides both; it is run
// as-is and must print one chosen path per line.
type Picker struct {
	command string
}

func NewPicker(command string) *Picker {
	return &Picker{command: strings.TrimSpace(command)}
}

func (p *Picker) Pick(ctx context.Context, req session.PickRequest) ([]string, error) {
	name, args := p.pickCommand(req)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			// Dismissed without choosing.
			return nil, nil
		}
		return nil, fmt.Errorf("platform: file dialog: %w", err)
	}
	return splitPicks(string(out)), nil
}

func (p *Picker) pickCommand(req session.PickRequest) (string, []string) {
	if p.command != "" {
		return p.command, nil
	}
	if runtime.GOOS == "darwin" {
		// osascript returns a single POSIX path; multi-select needs a
		// custom ASSISTANT_PICKER command.
		script := "POSIX path of (choose file"
		if req.Source != "" {
			script += fmt.Sprintf(" default location POSIX file %q", req.Source)
		}
		script += ")"
		return "osascript", []string{"-e", script}
	}

	args := []string{"--file-selection"}
	if req.Multiple {
		args = append(args, "--multiple", "--separator", "\n")
	}
	if req.Source != "" {
		args = append(args, "--filename", strings.TrimSuffix(req.Source, "/")+"/")
	}
	if len(req.FileTypes) > 0 {
		patterns := make([]string, len(req.FileTypes))
		for i, ext := range req.FileTypes {
			patterns[i] = "*." + strings.TrimPrefix(ext, ".")
		}
		args = append(args, "--file-filter", strings.Join(patterns, " "))
	}
	return "zenity", args
}

func splitPicks(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}
