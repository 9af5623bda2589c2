package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show scheduler counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.Get("/api/v1/stats")
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}

			var data map[string]any
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			keys := make([]string, 0, len(data))
			for k := range data {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				switch v := data[k].(type) {
				case float64:
					fmt.Printf("%-20s %d\n", k, int(v))
				case map[string]any:
					fmt.Printf("%s:\n", k)
					sub := make([]string, 0, len(v))
					for sk := range v {
						sub = append(sub, sk)
					}
					sort.Strings(sub)
					for _, sk := range sub {
						if n, ok := v[sk].(float64); ok {
							fmt.Printf("  %-18s %d\n", sk, int(n))
						}
					}
				default:
					fmt.Printf("%-20s %v\n", k, v)
				}
			}
			return nil
		},
	}
}
