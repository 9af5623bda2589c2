package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newNodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Manage execution nodes",
	}
	cmd.AddCommand(newNodesListCmd(), newNodesAddCmd())
	return cmd
}

func newNodesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared execution nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/nodes/")
			if err != nil {
				return fmt.Errorf("list nodes: %w", err)
			}

			var nodes []map[string]any
			if err := json.Unmarshal(resp.Data, &nodes); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if len(nodes) == 0 {
				fmt.Println("No nodes declared.")
				return nil
			}
			for _, n := range nodes {
				id, _ := n["id"].(string)
				loc, _ := n["location"].(string)
				running, _ := n["running_tasks"].(float64)
				rate, _ := n["success_rate"].(float64)
				fmt.Printf("%s  %-15s %d running, %.0f%% success\n", id, loc, int(running), rate*100)
			}
			return nil
		},
	}
}

func newNodesAddCmd() *cobra.Command {
	var (
		nodeType string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add <node_id>",
		Short: "Declare an execution node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"id":       args[0],
				"type":     nodeType,
				"location": location,
			}

			if _, err := client.Post("/api/v1/nodes/", req); err != nil {
				return fmt.Errorf("add node: %w", err)
			}
			fmt.Printf("Node added: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&nodeType, "type", "t", "", "Node type")
	cmd.Flags().StringVar(&location, "location", "", "Node location")

	return cmd
}
