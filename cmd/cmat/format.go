package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

// outcomeJSON is the machine readable form of a resolve outcome.
type outcomeJSON struct {
	Target      string                  `json:"target"`
	Skipped     bool                    `json:"skipped,omitempty"`
	Category    entities.Category       `json:"category,omitempty"`
	Region      string                  `json:"region,omitempty"`
	Winter      bool                    `json:"winter"`
	Features    []entities.FeatureFlag  `json:"features"`
	Record      entities.ResolvedRecord `json:"record"`
	Handles     []entities.Handle       `json:"handles"`
	Failures    []string                `json:"failures,omitempty"`
	Diagnostics []string                `json:"diagnostics,omitempty"`
	EntryID     string                  `json:"entry_id,omitempty"`
}

func toOutcomeJSON(o *services.Outcome) outcomeJSON {
	out := outcomeJSON{
		Target:      o.Target,
		Skipped:     o.Skipped,
		Category:    o.Context.Category,
		Region:      o.Context.RegionName,
		Winter:      o.Context.IsWinter,
		Features:    o.Context.Features.Flags(),
		Record:      o.Record,
		Handles:     o.Load.Handles,
		Diagnostics: errorStrings(o.Diagnostics),
		EntryID:     o.EntryID,
	}
	if out.Record.Refs == nil {
		out.Record.Refs = []entities.ResourceRef{}
	}
	if out.Handles == nil {
		out.Handles = []entities.Handle{}
	}
	for _, f := range o.Load.Failures {
		out.Failures = append(out.Failures, f.Error())
	}
	return out
}

func formatOutcomesJSON(w io.Writer, outcomes []*services.Outcome) error {
	out := make([]outcomeJSON, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, toOutcomeJSON(o))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatOutcomeText(w io.Writer, o *services.Outcome) {
	fmt.Fprintf(w, "Target: %s\n", o.Target)
	if o.Skipped {
		fmt.Fprintln(w, "  skipped (resource pack target)")
		return
	}

	fmt.Fprintf(w, "  Context: %s\n", formatContext(o.Context))
	fmt.Fprintf(w, "  Status:  %s\n", formatRecordSource(o.Record))

	if len(o.Load.Handles) > 0 {
		fmt.Fprintln(w, "  Handles:")
		for _, h := range o.Load.Handles {
			fmt.Fprintf(w, "    %s\n", formatHandle(h))
		}
	}

	if len(o.Load.Failures) > 0 {
		fmt.Fprintf(w, "  Failures (%d):\n", len(o.Load.Failures))
		for _, f := range o.Load.Failures {
			fmt.Fprintf(w, "    %s\n", f.Error())
		}
	}

	if len(o.Diagnostics) > 0 {
		fmt.Fprintf(w, "  Diagnostics (%d):\n", len(o.Diagnostics))
		for _, d := range o.Diagnostics {
			fmt.Fprintf(w, "    %s\n", d.Error())
		}
	}

	fmt.Fprintln(w, "  Trail:")
	for _, step := range o.Record.Trail {
		fmt.Fprintf(w, "    %s\n", formatTrailStep(step))
	}
}

func formatContext(rc entities.ResolutionContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "climate=%s", rc.Category)
	if rc.RegionName != "" {
		fmt.Fprintf(&b, " region=%q", rc.RegionName)
	}
	fmt.Fprintf(&b, " winter=%t", rc.IsWinter)
	if flags := rc.Features.Flags(); len(flags) > 0 {
		fmt.Fprintf(&b, " features=%s", joinFlags(flags))
	}
	return b.String()
}

func formatRecordSource(r entities.ResolvedRecord) string {
	if !r.IsResolved() {
		return string(entities.StatusUnresolved)
	}
	source := string(r.SourceCategory)
	if r.SourceRegion != "" {
		source = fmt.Sprintf("region %q", r.SourceRegion)
	}
	return fmt.Sprintf("%s via %s from %s/%s (%s)",
		r.Status, r.Rule, source, r.SourceSeason, formatRefs(r.Refs))
}

func formatTrailStep(step entities.TrailStep) string {
	mark := "-"
	if step.Matched {
		mark = "+"
	}
	line := fmt.Sprintf("%s %-22s %s", mark, step.Rule, step.Category)
	if step.Note != "" {
		line += " (" + step.Note + ")"
	}
	return line
}

func formatHandle(h entities.Handle) string {
	if h.Placeholder {
		return fmt.Sprintf("%s -> %s [placeholder]", h.Ref, h.Location)
	}
	return fmt.Sprintf("%s -> %s", h.Ref, h.Location)
}

func formatRefs(refs []entities.ResourceRef) string {
	if len(refs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

func joinFlags(flags []entities.FeatureFlag) string {
	parts := make([]string, 0, len(flags))
	for _, f := range flags {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ",")
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
