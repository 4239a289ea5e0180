package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

func newChainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain [category]",
		Short: "Show the fallback chains of the active profile",
		Long:  "Prints each category's fallback chain, gated entries and region rules for the active profile.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only string
			if len(args) == 1 {
				only = args[0]
			}
			return runChain(only)
		},
	}
}

func runChain(only string) error {
	return withProject(func(p *projectDeps) error {
		categories := entities.AllCategories()
		if only != "" {
			c, ok := entities.ParseCategory(only)
			if !ok {
				return fmt.Errorf("unknown category %q", only)
			}
			categories = []entities.Category{c}
		}

		fmt.Printf("Profile: %s (terminal: %s)\n\n", p.profile.Name, p.profile.Graph.Terminal)
		displayChains(p.profile, categories)

		if only == "" && len(p.profile.Rules) > 0 {
			fmt.Println()
			displayRules(p.profile.Rules)
		}
		return nil
	})
}

func displayChains(profile entities.Profile, categories []entities.Category) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tCHAIN\tGATED BY")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c, formatChain(profile.Graph.Chain(c)), profile.GatedDirect[c])
	}
	w.Flush()
}

func formatChain(chain []entities.Category) string {
	parts := make([]string, len(chain))
	for i, c := range chain {
		parts[i] = string(c)
	}
	return strings.Join(parts, " -> ")
}

func displayRules(rules []entities.RegionRule) {
	fmt.Println("Region rules:")
	for _, rule := range rules {
		fmt.Printf("  %s:\n", rule.Category)
		fmt.Printf("    primary   %s: %s\n", rule.Primary.Entry, strings.Join(rule.Primary.Regions, ", "))
		if rule.Secondary.Entry != "" {
			fmt.Printf("    secondary %s [%s]: %s\n",
				rule.Secondary.Entry, rule.Secondary.Feature, strings.Join(rule.Secondary.Regions, ", "))
		}
	}
}
