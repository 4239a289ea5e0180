package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/infrastructure/config"
	"github.com/ersonp/climate-materials/internal/infrastructure/relationaldb/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cmat project",
		Long:  "Creates a .cmat directory with default configuration, an example material document and the SQLite schema.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("cmat already initialized in %s", cwd)
	}

	defaults := config.Default()
	if err := config.ParseEnv(defaults); err != nil {
		return err
	}

	sqlitePath := config.ResolvePath(cwd, defaults.SQLite.Path)
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	result, err := handlers.NewInitHandler(relationalDB).Handle(ctx, cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Material documents: %s\n", result.DocumentsDir)
	if result.ExamplePath != "" {
		fmt.Printf("Wrote example document: %s\n", result.ExamplePath)
	}
	if result.SchemaCreated {
		fmt.Printf("Created database: %s\n", relationalDB.Path())
	}
	fmt.Println("cmat initialized successfully!")

	return nil
}
