package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Export or import the full system state",
	}
	cmd.AddCommand(newStateExportCmd(), newStateImportCmd())
	return cmd
}

func newStateExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the full system state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/state/export")
			if err != nil {
				return fmt.Errorf("export state: %w", err)
			}

			var pretty json.RawMessage = resp.Data
			out, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				return fmt.Errorf("format state: %w", err)
			}

			if outFile == "" {
				fmt.Println(string(out))
				return nil
			}
			if err := os.WriteFile(outFile, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			fmt.Printf("State written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write state to a file instead of stdout")

	return cmd
}

func newStateImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <state.json>",
		Short: "Replace the server state from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read state file: %w", err)
			}

			var state map[string]any
			if err := json.Unmarshal(raw, &state); err != nil {
				return fmt.Errorf("parse state file: %w", err)
			}

			if _, err := client.Post("/api/v1/state/import", state); err != nil {
				return fmt.Errorf("import state: %w", err)
			}
			fmt.Println("State imported.")
			return nil
		},
	}
}
