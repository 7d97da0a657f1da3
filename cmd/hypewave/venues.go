package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hypewave/internal/venue"
)

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "List all available venues",
	Long:  `Shows the built-in venues and any loaded with --venues <dir>.`,
	Run:   runVenues,
}

func runVenues(_ *cobra.Command, _ []string) {
	venues := venue.List()
	if len(venues) == 0 {
		fmt.Println("No venues available.")
		return
	}

	fmt.Println("Available venues:")
	fmt.Println()

	maxIDLen := 2
	for _, v := range venues {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-6s  %s\n", maxIDLen, "ID", "Size", "Stages", "Name")
	fmt.Printf("  %-*s  %-5s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")
	for _, v := range venues {
		fmt.Printf("  %-*s  %-5d  %-6d  %s\n", maxIDLen, v.ID, v.FieldSize, v.Stages, v.Name)
	}

	fmt.Println()
	fmt.Println("Run 'hypewave play <id>' to perform at a venue.")
}
