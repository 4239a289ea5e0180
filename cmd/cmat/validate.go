package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/domain/entities"
)

type validateFlags struct {
	features []string
	strict   bool
}

func newValidateCmd() *cobra.Command {
	var flags validateFlags

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a material document",
		Long: `Parses a material document, reports unknown keys and invalid refs, and
shows how every climate resolves in summer and winter under the active profile.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.features, "features", nil, "Feature flags to validate with (default: from config)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail when a warning is reported or a climate resolves to nothing")

	return cmd
}

func runValidate(cmd *cobra.Command, filePath string, flags validateFlags) error {
	ctx := cmd.Context()

	return withProject(func(p *projectDeps) error {
		features := p.features
		if cmd.Flags().Changed("features") {
			features = featuresFromFlags(flags.features)
		}

		handler := handlers.NewValidateHandler(p.resolver)
		result, err := handler.Handle(ctx, filePath, features)
		if err != nil {
			return fmt.Errorf("validating %s: %w", filePath, err)
		}

		displayValidateResult(result, p.profile.Name, features)

		if flags.strict && (len(result.Warnings) > 0 || len(result.Unresolved()) > 0) {
			return errors.New("validation failed")
		}
		return nil
	})
}

func featuresFromFlags(names []string) entities.FeatureState {
	flags := make([]entities.FeatureFlag, 0, len(names))
	for _, n := range names {
		flags = append(flags, entities.FeatureFlag(n))
	}
	return entities.NewFeatureState(flags...)
}

func displayValidateResult(result *handlers.ValidateResult, profile string, features entities.FeatureState) {
	fmt.Printf("Profile: %s  Features: %s\n", profile, orNone(joinFlags(features.Flags())))
	if result.IsRegionDocument() {
		fmt.Printf("Regions: %d\n", len(result.Regions))
		for _, r := range result.Regions {
			fmt.Printf("  %s\n", r)
		}
	} else {
		fmt.Printf("Populated: %d categories\n", len(result.Populated))
		for _, c := range result.Populated {
			fmt.Printf("  %s\n", c)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  %s\n", w.Error())
		}
	}

	if result.IsRegionDocument() {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLIMATE\tSUMMER\tWINTER")
	for _, c := range result.Coverage {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Category, coverageCell(c.Summer), coverageCell(c.Winter))
	}
	w.Flush()

	if unresolved := result.Unresolved(); len(unresolved) > 0 {
		fmt.Printf("\n%d climates resolve to nothing in at least one season.\n", len(unresolved))
	}
}

func coverageCell(r entities.ResolvedRecord) string {
	if !r.IsResolved() {
		return "-"
	}
	return fmt.Sprintf("%s/%s (%d)", r.SourceCategory, r.SourceSeason, len(r.Refs))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
