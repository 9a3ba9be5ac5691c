package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowduel/internal/catalog"
	"github.com/abhisek/knowduel/internal/duel"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a YAML or XLSX catalog file or directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		m, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		cov := m.Coverage()
		topics := 0
		for _, c := range cov {
			topics += c.Topics
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d categories, %d topics\n", args[0], len(cov), topics)

		problems := coverageWarnings(cov, cfg)
		for _, p := range problems {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", p)
		}
		if len(problems) == 0 {
			fmt.Fprintln(out, "OK")
		}
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "Show per-category topic and degree coverage",
	Long:  "Show coverage for a catalog file or directory, or for the built-in packs when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			m, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			printCoverage(out, args[0], m.Coverage(), cfg.MaxDegree)
			return nil
		}

		modes, err := resolveModes(cmd)
		if err != nil {
			return err
		}
		if len(modes) == 0 {
			modes = catalog.Modes()
		}
		for i, mode := range modes {
			m, err := catalog.Builtin(mode)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			printCoverage(out, mode.Label(), m.Coverage(), cfg.MaxDegree)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogListCmd)
}

// coverageWarnings reports categories a game cannot use: names outside the
// configured enumeration, enumeration entries with no content, and
// categories without a degree 1 topic.
func coverageWarnings(cov []catalog.Coverage, cfg duel.Config) []string {
	var out []string
	var present []catalog.Category
	for _, c := range cov {
		present = append(present, c.Category)
		if !slices.Contains(cfg.Categories, c.Category) {
			out = append(out, fmt.Sprintf("category %q is not in the category list and can never be picked", c.Category))
		}
		if c.Playable == 0 {
			out = append(out, fmt.Sprintf("category %q has no topic with degree 1 questions", c.Category))
		}
	}
	for _, c := range cfg.Categories {
		if !slices.Contains(present, c) {
			out = append(out, fmt.Sprintf("category %q has no content; selecting it passes the turn", c))
		}
	}
	return out
}

func printCoverage(w io.Writer, title string, cov []catalog.Coverage, maxDegree int) {
	fmt.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%-16s %6s %8s", "Category", "Topics", "Playable")
	for d := 1; d <= maxDegree; d++ {
		fmt.Fprintf(w, " %4s", fmt.Sprintf("D%d", d))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 32+5*maxDegree))

	for _, c := range cov {
		fmt.Fprintf(w, "%-16s %6d %8d", c.Category, c.Topics, c.Playable)
		for d := 1; d <= maxDegree; d++ {
			fmt.Fprintf(w, " %4d", c.Questions[d])
		}
		fmt.Fprintln(w)
	}

	if len(cov) == 0 {
		fmt.Fprintln(w, "No categories found.")
	}
}
