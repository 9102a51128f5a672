package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terrascope/invest-cli/internal/export"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cities by name, department or region",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")

		provider, err := openDataset()
		if err != nil {
			return err
		}

		matches := provider.Search(args[0], limit)
		if format == "json" {
			return export.WriteJSON(os.Stdout, matches)
		}

		if len(matches) == 0 {
			fmt.Println("Aucun résultat.")
			return nil
		}
		for _, city := range matches {
			fmt.Printf("%-10s %-30s %s (%s)\n",
				city.INSEECode, city.Name, city.Department.Name, city.Region.Name)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 20, "max results")
	searchCmd.Flags().String("format", "text", "output format: text, json")
	rootCmd.AddCommand(searchCmd)
}
