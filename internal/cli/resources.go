package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newResourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Manage resource pools",
	}
	cmd.AddCommand(
		newResourcesListCmd(),
		newResourcesAddCmd(),
		newResourcesRemoveCmd(),
	)
	return cmd
}

func newResourcesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered resource pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/resources/")
			if err != nil {
				return fmt.Errorf("list resources: %w", err)
			}

			var resources []map[string]any
			if err := json.Unmarshal(resp.Data, &resources); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(resources) == 0 {
				fmt.Println("No resources registered.")
				return nil
			}
			for _, r := range resources {
				id, _ := r["id"].(string)
				typ, _ := r["type"].(string)
				name, _ := r["name"].(string)
				avail, _ := r["available_units"].(float64)
				total, _ := r["total_units"].(float64)
				fmt.Printf("%s  %-10s %-20s %d/%d available\n", id, typ, name, int(avail), int(total))
			}
			return nil
		},
	}
}

func newResourcesAddCmd() *cobra.Command {
	var (
		resType  string
		units    int
		version  string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a resource pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        args[0],
				"type":        resType,
				"total_units": units,
				"version":     version,
				"location":    location,
			}

			resp, err := client.Post("/api/v1/resources/", req)
			if err != nil {
				return fmt.Errorf("add resource: %w", err)
			}

			var data map[string]any
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			id, _ := data["id"].(string)
			fmt.Printf("Resource added: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resType, "type", "t", "cpu_core", "Resource type (cpu_core, gpu, memory, ...)")
	cmd.Flags().IntVarP(&units, "units", "u", 1, "Total capacity units")
	cmd.Flags().StringVar(&version, "version", "", "Resource version")
	cmd.Flags().StringVar(&location, "location", "", "Resource location")

	return cmd
}

func newResourcesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <resource_id>",
		Short: "Deregister a resource pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if _, err := client.Delete("/api/v1/resources/" + id); err != nil {
				return fmt.Errorf("remove resource: %w", err)
			}
			fmt.Printf("Resource removed: %s\n", id)
			return nil
		},
	}
}
