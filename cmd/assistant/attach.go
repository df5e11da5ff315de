package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assistant/bridge"
	"assistant/internal/term"
	"assistant/surface"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach the terminal surface to a dialog staged on a host",
	Long: `Connect to a dialog host's bridge endpoint and drive the staged form
from this terminal. The result stays with the host; whoever staged the
dialog collects it there.

Example:
  assistant attach --url ws://localhost:8765/bridge?session=0198c6...`,
	RunE: runAttach,
}

func init() {
	rootCmd.AddCommand(attachCmd)
	attachCmd.Flags().String("url", "", "Bridge websocket URL including the session id")
	attachCmd.Flags().String("title", "", "Title line shown above the form")
}

func runAttach(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("--url is required")
	}
	title, _ := cmd.Flags().GetString("title")

	client, err := bridge.DialWS(context.Background(), url)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer client.Close()

	fe := term.New(title)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- surface.Run(context.Background(), client, fe)
	}()

	if err := fe.Run(); err != nil {
		return fmt.Errorf("terminal surface: %w", err)
	}
	if err := <-loopErr; err != nil && !errors.Is(err, surface.ErrClosed) {
		return err
	}
	return nil
}
