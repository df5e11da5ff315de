package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"assistant/ask"
	"assistant/internal/decl"
	"assistant/session"
)

var runCmd = &cobra.Command{
	Use:   "run [form file]",
	Short: "Run a dialog form in the terminal and print the result",
	Long: `Load a form declaration (YAML or JSON), present it in the terminal,
and print the submitted record once the form is sent. The session and
the surface share the process; no host daemon is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Duration("timeout", 0, "Override the declared session timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
	f, err := decl.Load(args[0])
	if err != nil {
		return err
	}
	d, err := f.ToDialog()
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = f.SessionTimeout()
	}

	record, err := ask.Run(context.Background(), d,
		ask.WithTitle(f.Title),
		ask.WithTimeout(timeout),
	)
	if errors.Is(err, session.ErrTimedOut) {
		return fmt.Errorf("form timed out after %s", timeout)
	}
	if err != nil {
		return err
	}
	return printRecord(cmd, record)
}
