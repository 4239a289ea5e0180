package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

var calendarSeasons = []entities.CalendarSeason{
	entities.CalendarSpring,
	entities.CalendarSummer,
	entities.CalendarFall,
	entities.CalendarWinter,
}

func newWinterCmd() *cobra.Command {
	var snowless bool

	cmd := &cobra.Command{
		Use:   "winter",
		Short: "Show where winter materials apply",
		Long:  "Prints, for every climate and calendar season, whether winter materials are used and winter-only objects are shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			displayWinterMatrix(snowlessFeatures(snowless))
			return nil
		},
	}

	cmd.Flags().BoolVar(&snowless, "snowless", false, "Assume the snowless winter pack is installed")

	return cmd
}

func snowlessFeatures(snowless bool) entities.FeatureState {
	if snowless {
		return entities.NewFeatureState(entities.FeatureSnowless)
	}
	return entities.NewFeatureState()
}

func displayWinterMatrix(features entities.FeatureState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "CLIMATE")
	for _, s := range calendarSeasons {
		fmt.Fprintf(w, "\t%s", s)
	}
	fmt.Fprintln(w)

	for _, c := range entities.ClimateCategories {
		fmt.Fprint(w, c)
		for _, s := range calendarSeasons {
			cell := "-"
			if services.VisibleInSeason(s, c, features) {
				cell = "winter"
			}
			fmt.Fprintf(w, "\t%s", cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

type cropsFlags struct {
	climate  string
	season   string
	record   int
	batch    bool
	snowless bool
}

func newCropsCmd() *cobra.Command {
	var flags cropsFlags

	cmd := &cobra.Command{
		Use:   "crops",
		Short: "Show the billboard refs used for crop fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrops(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.climate, "climate", "c", string(entities.CategoryWoodlands), "Climate name or index")
	cmd.Flags().StringVarP(&flags.season, "season", "s", string(entities.CalendarSummer), "Calendar season")
	cmd.Flags().IntVar(&flags.record, "record", 0, "Initial billboard record (0 selects the first variant, or every variant for a batch)")
	cmd.Flags().BoolVar(&flags.batch, "batch", false, "Resolve a batched crop field instead of a single billboard")
	cmd.Flags().BoolVar(&flags.snowless, "snowless", false, "Assume the snowless winter pack is installed")

	return cmd
}

func runCrops(flags cropsFlags) error {
	climate, err := handlers.ParseClimate(flags.climate)
	if err != nil {
		return err
	}
	season, err := handlers.ParseCalendarSeason(flags.season)
	if err != nil {
		return err
	}

	category := entities.CategoryFromClimateIndex(climate)
	winter := services.IsWinterEffective(season, category, flags.snowless)
	kind := services.CropSingle
	if flags.batch {
		kind = services.CropBatch
	}
	refs := services.CropRecords(kind, category, winter, flags.record)

	fmt.Printf("%s %s %s: %s\n", category, season, kind, formatRefs(refs))
	return nil
}
