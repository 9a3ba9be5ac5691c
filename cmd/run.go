package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowduel/internal/app"
	"github.com/abhisek/knowduel/internal/screens/match"
)

// runApp loads config, logging and the catalog, then launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	logger, closer, err := newFileLogger(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	modes, err := resolveModes(cmd)
	if err != nil {
		return err
	}
	cat, name, err := loadCatalog(cmd)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	return app.Run(app.Options{
		Config:        cfg,
		Catalog:       cat,
		CatalogName:   name,
		Modes:         modes,
		Rand:          newRand(cmd),
		Logger:        logger,
		ComputerDelay: match.DefaultComputerDelay,
		SkipWelcome:   skipWelcome,
	})
}
