package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"assistant"
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Stage and run attended dialog forms",
	Long: `Run dialog forms declared in YAML or JSON files, attach the terminal
surface to a dialog staged on a remote host, or expose the whole flow
to agents as an MCP tool.`,
}

func init() {
	rootCmd.PersistentFlags().String("format", "yaml", "Result output format: yaml, json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printRecord(cmd *cobra.Command, record assistant.Result) error {
	format, _ := rootCmd.PersistentFlags().GetString("format")
	switch format {
	case "json":
		b, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
	case "yaml", "":
		b, err := yaml.Marshal(record)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
	default:
		return fmt.Errorf("unknown format %q (use yaml or json)", format)
	}
	return nil
}
