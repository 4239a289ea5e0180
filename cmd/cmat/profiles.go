package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/infrastructure/config"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage resolution profiles",
		RunE:  runProfilesList,
	}

	cmd.AddCommand(
		newProfilesListCmd(),
		newProfilesAddCmd(),
		newProfilesRemoveCmd(),
	)

	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom profiles",
		RunE:  runProfilesList,
	}
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	profiles, err := config.LoadProfiles(cwd)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tDESCRIPTION")
	for _, name := range entities.ProfileNames() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, "built-in", "")
	}
	for _, name := range profiles.Names() {
		entry := profiles.Profiles[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, orDefault(entry.Base, entities.DefaultProfileName), truncate(entry.Description, 50))
	}
	w.Flush()

	return nil
}

type profileAddFlags struct {
	base        string
	description string
	edges       map[string]string
	gated       map[string]string
	noRules     bool
}

func newProfilesAddCmd() *cobra.Command {
	var flags profileAddFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a custom profile derived from a built-in one",
		Long: `Adds a custom profile. Edges replace fallback edges of the base profile
(--edge ocean=desert) and gates bind a category's own entry to a feature
(--gate swamp=biomes, or --gate swamp= to lift a gate of the base).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesAdd(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.base, "base", "b", entities.DefaultProfileName, "Built-in profile to derive from")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Profile description")
	cmd.Flags().StringToStringVar(&flags.edges, "edge", nil, "Fallback edge overrides (from=to)")
	cmd.Flags().StringToStringVar(&flags.gated, "gate", nil, "Gated direct entries (category=feature)")
	cmd.Flags().BoolVar(&flags.noRules, "no-rules", false, "Drop the base profile's region rules")

	return cmd
}

func runProfilesAdd(name string, flags profileAddFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	name, err = addProfile(cwd, name, config.ProfileEntry{
		Base:        flags.base,
		Description: flags.description,
		Edges:       flags.edges,
		Gated:       flags.gated,
		NoRules:     flags.noRules,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added profile %q\n", name)
	return nil
}

// addProfile validates entry and saves it under its sanitized name.
func addProfile(basePath, name string, entry config.ProfileEntry) (string, error) {
	// SanitizeName falls back to "default" when nothing usable is left.
	clean := config.SanitizeName(name)
	if clean == "default" && strings.ToLower(strings.TrimSpace(name)) != "default" {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	if _, err := entities.ProfileByName(clean); err == nil {
		return "", fmt.Errorf("%q is a built-in profile", clean)
	}

	if _, err := entry.Build(clean); err != nil {
		return "", err
	}

	profiles, err := config.LoadProfiles(basePath)
	if err != nil {
		return "", fmt.Errorf("loading profiles: %w", err)
	}
	if _, exists := profiles.Profiles[clean]; exists {
		return "", fmt.Errorf("profile %q already exists", clean)
	}

	clean = profiles.Add(clean, entry)
	if err := profiles.Save(basePath); err != nil {
		return "", fmt.Errorf("saving profiles: %w", err)
	}
	return clean, nil
}

func newProfilesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a custom profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilesRemove(args[0])
		},
	}
}

func runProfilesRemove(name string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if err := removeProfile(cwd, name); err != nil {
		return err
	}

	fmt.Printf("Removed profile %q\n", name)
	return nil
}

func removeProfile(basePath, name string) error {
	profiles, err := config.LoadProfiles(basePath)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}
	if _, err := profiles.Get(name); err != nil {
		return err
	}

	profiles.Remove(name)
	if err := profiles.Save(basePath); err != nil {
		return fmt.Errorf("saving profiles: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
