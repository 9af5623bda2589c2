package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check cross-table consistency on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/validate")
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			var data struct {
				Consistent bool     `json:"consistent"`
				Violations []string `json:"violations"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if data.Consistent {
				fmt.Println("System state is consistent.")
				return nil
			}
			fmt.Printf("Found %d violation(s):\n", len(data.Violations))
			for _, v := range data.Violations {
				fmt.Printf("  - %s\n", v)
			}
			return fmt.Errorf("system state is inconsistent")
		},
	}
}
