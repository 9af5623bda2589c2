package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <task_id>",
		Short: "Cancel a queued or running task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if _, err := client.Delete("/api/v1/tasks/" + id); err != nil {
				return fmt.Errorf("cancel task: %w", err)
			}
			fmt.Printf("Task cancelled: %s\n", id)
			return nil
		},
	}
}
