package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/tasks/?status=" + status)
			if err != nil {
				return fmt.Errorf("list tasks: %w", err)
			}

			var tasks []map[string]any
			if err := json.Unmarshal(resp.Data, &tasks); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Printf("No %s tasks.\n", status)
				return nil
			}
			for _, t := range tasks {
				id, _ := t["id"].(string)
				name, _ := t["name"].(string)
				fmt.Printf("%s  %s\n", id, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "pending", "Task status to filter by")

	return cmd
}
