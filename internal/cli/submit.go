package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSubmitCmd() *cobra.Command {
	var (
		taskFile string
		taskType string
		priority string
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "submit <name>",
		Short: "Submit a task for scheduling",
		Long:  "Create a task on the taskindex server. Dependencies, requirements, and payload come from a YAML task file (--file).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name": args[0],
			}
			if taskFile != "" {
				data, err := os.ReadFile(taskFile)
				if err != nil {
					return fmt.Errorf("read task file: %w", err)
				}
				if err := yaml.Unmarshal(data, &req); err != nil {
					return fmt.Errorf("parse task file: %w", err)
				}
				// The positional name wins over the file's.
				req["name"] = args[0]
			}
			if taskType != "" {
				req["type"] = taskType
			}
			if priority != "" {
				req["priority"] = priority
			}
			if len(tags) > 0 {
				req["tags"] = tags
			}

			resp, err := client.Post("/api/v1/tasks/", req)
			if err != nil {
				return fmt.Errorf("create task: %w", err)
			}

			var data map[string]any
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			id, _ := data["id"].(string)
			status, _ := data["status"].(string)
			fmt.Printf("Task submitted: %s (%s)\n", id, status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&taskFile, "file", "f", "", "YAML file with task fields (dependencies, requirements, payload)")
	cmd.Flags().StringVarP(&taskType, "type", "t", "", "Task type (cpu, gpu, io, ...)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")

	return cmd
}
