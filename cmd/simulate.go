package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
	"github.com/abhisek/knowduel/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a full game headlessly and print the turn log",
	RunE: func(cmd *cobra.Command, args []string) error {
		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := simulationCatalog(cmd)
		if err != nil {
			return err
		}

		rng := newRand(cmd)
		eng, err := duel.NewEngine(cfg, cat, rng, logger)
		if err != nil {
			return fmt.Errorf("new game: %w", err)
		}
		runner, err := sim.New(eng, rng, sim.Options{
			Accuracy: accuracy,
			MaxSteps: maxSteps,
			Out:      cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}

		if _, err := runner.Run(cmd.Context()); err != nil {
			return fmt.Errorf("simulate: %w", err)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64("accuracy", 0.7, "Probability that Player 1 answers correctly")
	simulateCmd.Flags().Int("max-steps", sim.DefaultMaxSteps, "Abort after this many engine calls")
	simulateCmd.Flags().BoolP("verbose", "v", false, "Log every engine transition to stderr")
}

// simulationCatalog returns --catalog when set, otherwise the pack named
// by --mode, defaulting to trivia.
func simulationCatalog(cmd *cobra.Command) (catalog.Catalog, error) {
	cat, _, err := loadCatalog(cmd)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if cat != nil {
		return cat, nil
	}

	modes, err := resolveModes(cmd)
	if err != nil {
		return nil, err
	}
	mode := catalog.ModeTrivia
	if len(modes) > 0 {
		mode = modes[0]
	}
	return catalog.Builtin(mode)
}
