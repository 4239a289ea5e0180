package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

type historyFlags struct {
	limit  int
	format string
	stats  bool
}

func newHistoryCmd() *cobra.Command {
	var flags historyFlags

	cmd := &cobra.Command{
		Use:   "history [target]",
		Short: "Show recent resolutions",
		Long:  "Lists the newest recorded resolutions of a target, or totals per status with --stats.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				target = args[0]
			}
			return runHistory(cmd, target, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultHistoryLimit, "Maximum number of entries to display")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Show resolution counts per status")

	return cmd
}

func runHistory(cmd *cobra.Command, target string, flags historyFlags) error {
	if !isValidFormat(flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}
	if target == "" && !flags.stats {
		return errors.New("target is required (or use --stats)")
	}

	ctx := cmd.Context()

	return withInternalDeps(ctx, func(d *internalDeps) error {
		if flags.stats {
			counts, err := d.relationalDB.CountResolutionsByStatus(ctx)
			if err != nil {
				return fmt.Errorf("counting resolutions: %w", err)
			}
			displayStatusCounts(os.Stdout, counts)
			return nil
		}

		entries, err := d.HistoryHandler.Handle(ctx, target, flags.limit)
		if err != nil {
			return err
		}

		if flags.format == "json" {
			return formatEntriesJSON(os.Stdout, entries)
		}

		if len(entries) == 0 {
			fmt.Printf("No resolutions recorded for %s.\n", target)
			return nil
		}
		displayEntries(os.Stdout, entries)
		return nil
	})
}

func formatEntriesJSON(w io.Writer, entries []entities.ResolutionEntry) error {
	if entries == nil {
		entries = []entities.ResolutionEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func displayEntries(out io.Writer, entries []entities.ResolutionEntry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPROFILE\tCLIMATE\tREGION\tWINTER\tSTATUS\tRULE\tSOURCE\tLOADED")
	for _, e := range entries {
		source := "-"
		if e.SourceCategory != "" {
			source = fmt.Sprintf("%s/%s", e.SourceCategory, e.SourceSeason)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\t%s\t%s\t%d/%d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Profile,
			e.Category,
			orDash(truncate(e.RegionName, 24)),
			e.IsWinter,
			e.Status,
			e.Rule,
			source,
			e.Loaded,
			e.Loaded+e.Failed,
		)
	}
	w.Flush()
}

func displayStatusCounts(out io.Writer, counts map[entities.Status]int) {
	if len(counts) == 0 {
		fmt.Fprintln(out, "No resolutions recorded.")
		return
	}

	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT")
	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%d\n", s, counts[entities.Status(s)])
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
