package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assistant"
	"assistant/internal/decl"
	"assistant/internal/term"
	"assistant/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview [form file]",
	Short: "Render a form declaration once without staging a dialog",
	Long: `Build the component tree for a declaration against its default values
and print it. Catches declaration mistakes before any host or surface
is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	f, err := decl.Load(args[0])
	if err != nil {
		return err
	}
	d, err := f.ToDialog()
	if err != nil {
		return err
	}

	elements := d.Elements()
	comps := render.Build(elements, assistant.Seed(elements))
	fmt.Fprintln(cmd.OutOrStdout(), term.Preview(f.Title, comps))
	return nil
}
