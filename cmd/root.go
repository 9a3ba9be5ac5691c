package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
)

var rootCmd = &cobra.Command{
	Use:   "knowduel",
	Short: "Head-to-head knowledge duel against the computer",
	Long: "Knowduel is a terminal quiz duel. Pick your strengths, assign the computer its\n" +
		"weaknesses, then climb each category through three degrees and steal what it misses.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("catalog", "", "Path to a YAML/XLSX catalog file or directory (replaces the built-in packs)")
	pf.String("mode", "", "Built-in pack to offer: trivia or education (default: both)")
	pf.Uint64("seed", 0, "Seed for a deterministic game (default: random)")
	pf.String("log-file", "", "Write JSON logs to this file (overrides KNOWDUEL_LOG_FILE env var)")
	pf.Int("rounds", 0, "Round limit (overrides KNOWDUEL_ROUND_LIMIT env var)")
	pf.String("categories", "", "Comma-separated category enumeration (overrides KNOWDUEL_CATEGORIES env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig returns the game config from defaults, KNOWDUEL_* env vars
// and, with the highest priority, command flags.
func loadConfig(cmd *cobra.Command) (duel.Config, error) {
	cfg, err := duel.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if n, _ := cmd.Flags().GetInt("rounds"); n > 0 {
		cfg.RoundLimit = n
	}
	if s, _ := cmd.Flags().GetString("categories"); s != "" {
		cfg.Categories = catalog.ParseCategories(s)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveLogPath returns the log file path using --log-file (highest
// priority), then KNOWDUEL_LOG_FILE. Empty means logging is off.
func resolveLogPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		return p
	}
	return os.Getenv("KNOWDUEL_LOG_FILE")
}

// newFileLogger opens the resolved log file and installs a JSON logger as
// the default. Without a path logs are discarded. The returned closer is
// never nil.
func newFileLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	path := resolveLogPath(cmd)
	if path == "" {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(logger)
		return logger, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	return logger, f, nil
}

// newRand returns a Rand seeded from --seed, or randomly when the flag is
// not set.
func newRand(cmd *cobra.Command) duel.Rand {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		return duel.NewRand(seed)
	}
	return duel.NewRand(rand.Uint64())
}

// resolveModes parses --mode. Empty means every built-in pack.
func resolveModes(cmd *cobra.Command) ([]catalog.Mode, error) {
	v, _ := cmd.Flags().GetString("mode")
	if v == "" {
		return nil, nil
	}
	for _, m := range catalog.Modes() {
		if string(m) == v {
			return []catalog.Mode{m}, nil
		}
	}
	return nil, fmt.Errorf("unknown mode %q (want trivia or education)", v)
}

// loadCatalog loads --catalog when given. It returns a nil catalog when the
// built-in packs should be used.
func loadCatalog(cmd *cobra.Command) (catalog.Catalog, string, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return nil, "", nil
	}
	m, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	name := filepath.Base(path)
	return m, trimExt(name), nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
