package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/constellation/internal/registry"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List all word packs",
	Long:  `Shows the word packs built into constellation.`,
	Args:  cobra.NoArgs,
	Run:   runPacks,
}

func runPacks(_ *cobra.Command, _ []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No word packs available.")
		return
	}

	fmt.Println("Available word packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Words", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, p := range packs {
		marker := ""
		if p.ID == registry.DefaultPack {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-5d  %s%s\n", maxIDLen, p.ID, p.Size, p.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'constellation play --pack <id>' to play a pack,")
	fmt.Println("or 'constellation play --words <file.yaml>' for your own words.")
}
