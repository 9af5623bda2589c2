package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <task_id>",
		Short: "Suggest the best execution node for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			resp, err := client.Get("/api/v1/tasks/" + id + "/placement")
			if err != nil {
				return fmt.Errorf("get placement: %w", err)
			}

			var data map[string]any
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			found, _ := data["found"].(bool)
			if !found {
				fmt.Println("No suitable node found.")
				return nil
			}
			node, _ := data["node_id"].(string)
			score, _ := data["score"].(float64)
			fmt.Printf("Best node: %s (score %.2f)\n", node, score)
			return nil
		},
	}
}
