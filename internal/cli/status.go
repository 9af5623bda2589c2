package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <task_id>",
		Short: "Check the status of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			resp, err := client.Get("/api/v1/tasks/" + id)
			if err != nil {
				return fmt.Errorf("get task: %w", err)
			}

			var data map[string]any
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			name, _ := data["name"].(string)
			status, _ := data["status"].(string)
			fmt.Printf("Task: %s\n", id)
			fmt.Printf("  Name:     %s\n", name)
			fmt.Printf("  Status:   %s\n", status)
			if prio, ok := data["priority"].(float64); ok {
				fmt.Printf("  Priority: %d\n", int(prio))
			}
			if node, ok := data["execution_node"].(string); ok && node != "" {
				fmt.Printf("  Node:     %s\n", node)
			}
			if assigned, ok := data["assigned_resources"].(map[string]any); ok && len(assigned) > 0 {
				fmt.Println("  Resources:")
				for rid, units := range assigned {
					if u, ok := units.(float64); ok {
						fmt.Printf("    - %s: %d units\n", rid, int(u))
					}
				}
			}
			if retries, ok := data["retry_count"].(float64); ok && retries > 0 {
				fmt.Printf("  Retries:  %d\n", int(retries))
			}
			if errMsg, ok := data["error"].(string); ok && errMsg != "" {
				fmt.Printf("  Error:    %s\n", errMsg)
			}
			if createdAt, ok := data["created_at"].(string); ok {
				fmt.Printf("  Created:  %s\n", createdAt)
			}
			return nil
		},
	}
}
