package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

type resolveFlags struct {
	climate string
	region  string
	season  string
	format  string
}

func newResolveCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve <target>...",
		Short: "Resolve and load the materials for targets",
		Long: `Resolves each target's material document against the given world state,
loads the resolved refs from the configured archive and records the result
in the resolution history.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.climate, "climate", "c", string(entities.CategoryWoodlands), "Climate name or index")
	cmd.Flags().StringVarP(&flags.region, "region", "r", "", "Region name")
	cmd.Flags().StringVarP(&flags.season, "season", "s", string(entities.CalendarSummer), "Calendar season (spring, summer, fall, winter)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runResolve(cmd *cobra.Command, targets []string, flags resolveFlags) error {
	if !isValidFormat(flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	climate, err := handlers.ParseClimate(flags.climate)
	if err != nil {
		return err
	}

	season, err := handlers.ParseCalendarSeason(flags.season)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		outcomes := make([]*services.Outcome, 0, len(targets))
		for _, target := range targets {
			outcome, err := d.ResolveHandler.Handle(ctx, handlers.ResolveRequest{
				Target:   target,
				Climate:  climate,
				Region:   flags.region,
				Calendar: season,
			})
			if err != nil {
				return fmt.Errorf("resolving %s: %w", target, err)
			}
			outcomes = append(outcomes, outcome)
		}

		if flags.format == "json" {
			return formatOutcomesJSON(os.Stdout, outcomes)
		}

		fmt.Printf("Profile: %s\n\n", d.Profile.Name)
		for _, o := range outcomes {
			formatOutcomeText(os.Stdout, o)
			fmt.Println()
		}
		return nil
	})
}
