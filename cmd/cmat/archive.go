package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage the archive catalog",
		Long:  "Import and list the resource handles registered in the configured archive catalog.",
	}

	cmd.AddCommand(
		newArchiveImportCmd(),
		newArchiveListCmd(),
	)

	return cmd
}

type importFlags struct {
	dryRun     bool
	onConflict string
}

func newArchiveImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import resource handles from JSON or CSV",
		Long:  "Registers archive/record/frame to location mappings from a structured file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", string(services.ConflictSkip), "Conflict handling (skip, overwrite)")

	return cmd
}

func runArchiveImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	strategy := services.ConflictStrategy(flags.onConflict)
	if strategy != services.ConflictSkip && strategy != services.ConflictOverwrite {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, overwrite)", flags.onConflict)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		fmt.Printf("Importing %s into the %s catalog...\n", filePath, d.Config.Archive.Backend)

		result, err := d.ImportHandler.Handle(ctx, filePath, handlers.ImportOptions{
			DryRun:     flags.dryRun,
			OnConflict: strategy,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		// Display errors
		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		// Display summary
		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d handles would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d handles", result.Imported)
		}

		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}

		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}

		fmt.Println()

		return nil
	})
}

func newArchiveListCmd() *cobra.Command {
	var (
		archiveID int
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered resource handles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveList(cmd, archiveID, limit)
		},
	}

	cmd.Flags().IntVarP(&archiveID, "archive", "a", -1, "Only list handles of this archive")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of handles to display (0 for all)")

	return cmd
}

func runArchiveList(cmd *cobra.Command, archiveID, limit int) error {
	if limit < 0 || limit > MaxListLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxListLimit)
	}

	ctx := cmd.Context()

	return withInternalDeps(ctx, func(d *internalDeps) error {
		handles, err := d.catalogService.List(ctx, archiveID, limit)
		if err != nil {
			return fmt.Errorf("listing handles: %w", err)
		}

		if len(handles) == 0 {
			fmt.Println("No handles found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ARCHIVE\tRECORD\tFRAME\tLOCATION")
		for _, h := range handles {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", h.Ref.Archive, h.Ref.Record, h.Ref.Frame, truncate(h.Location, 60))
		}
		w.Flush()

		fmt.Printf("\n%d handles\n", len(handles))
		return nil
	})
}
