package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jason-s-yu/principality/engine"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List every card",
	Long:  `Shows the card table: cost, type and what each card does when played.`,
	Run:   runCards,
}

func runCards(cmd *cobra.Command, args []string) {
	cards := engine.AllCards()

	maxName := 4 // "Name" header
	for _, c := range cards {
		maxName = max(maxName, len(c.Name))
	}

	fmt.Printf("  %-*s  %4s  %-16s  %s\n", maxName, "Name", "Cost", "Type", "Effect")
	fmt.Printf("  %-*s  %4s  %-16s  %s\n", maxName, "----", "----", "----", "------")
	for _, c := range cards {
		fmt.Printf("  %-*s  %4d  %-16s  %s\n", maxName, c.Name, c.Cost, c.Type, describe(c))
	}
}

func describe(c engine.Card) string {
	if c.Description != "" {
		return c.Description
	}
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", n, what))
		}
	}
	add(c.Effect.Cards, "Cards")
	add(c.Effect.Actions, "Actions")
	add(c.Effect.Buys, "Buys")
	add(c.Effect.Coins, "Coins")
	if c.VictoryPoints != 0 {
		parts = append(parts, fmt.Sprintf("%d VP", c.VictoryPoints))
	}
	if c.Effect.Special != engine.SpecialNone {
		parts = append(parts, c.Effect.Special.String())
	}
	return strings.Join(parts, ", ")
}
