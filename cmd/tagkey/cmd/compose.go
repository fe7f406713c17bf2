package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/TAGKey/pkg/cache"
	"github.com/ChrisMcGann/TAGKey/pkg/compose"
	"github.com/ChrisMcGann/TAGKey/pkg/composition"
	"github.com/ChrisMcGann/TAGKey/pkg/pipeline"
	"github.com/ChrisMcGann/TAGKey/pkg/settings"
	"github.com/ChrisMcGann/TAGKey/pkg/writer/sqlite"
	"github.com/ChrisMcGann/TAGKey/pkg/writer/text"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Derive TAG compositions from fatty acid samples",
	Long: `Calculate TAG species from one or more samples, group them into nested
composition levels and summarize every level across samples (mean and
standard deviation).

Examples:
  # Non-stereospecific species composition of one sample
  tagkey compose --in olive.csv

  # ECN groups refined by positional species, mean over three replicates
  tagkey compose -i r1.csv -i r2.csv -i r3.csv -g ECNC:0.01 -g PSC:0.005

  # Mass composition with sodium adducts, sorted by value, saved to SQLite
  tagkey compose --in olive.csv -g MC --adduct Na --sort value --order desc --out olive.db`,
	RunE: runCompose,
}

func runCompose(cmd *cobra.Command, args []string) error {
	s, err := buildSettings(cmd)
	if err != nil {
		return err
	}

	adducts, err := loadAdducts()
	if err != nil {
		return err
	}

	cfg, err := s.Resolve(adducts)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	samples, err := loadSamples(inputFiles)
	if err != nil {
		return err
	}

	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	index := selectedIndex()
	if index != nil {
		logf("Sample: %d\n", *index)
	} else {
		logf("Samples: %d (aggregated)\n", len(samples))
	}
	logf("Compositions: %s\n", formatGroups(s.Groups))
	logf("Method: %s\n", s.Method)

	p := pipeline.New(c)
	res, err := p.Run(context.Background(), samples, index, cfg)
	if err != nil {
		return err
	}

	if p.Computations() == 0 {
		logf("Result loaded from cache\n")
	}
	logf("Rows: %d\n", res.Len())

	return writeResult(res, cfg, pipeline.Fingerprint(samples, index, cfg))
}

// buildSettings starts from the settings file (or defaults) and applies every
// flag set explicitly on the command line.
func buildSettings(cmd *cobra.Command) (settings.Settings, error) {
	s := settings.Default()
	if settingsFile != "" {
		var err error
		s, err = settings.Load(settingsFile)
		if err != nil {
			return s, err
		}
		logf("Loaded settings from %s\n", settingsFile)
	}

	flags := cmd.Flags()
	if flags.Changed("group") {
		groups := make([]settings.Group, 0, len(groupArgs))
		for _, arg := range groupArgs {
			g, err := parseGroup(arg)
			if err != nil {
				return s, err
			}
			groups = append(groups, g)
		}
		s.Groups = groups
	}
	if flags.Changed("method") {
		s.Method = method
	}
	if flags.Changed("from") {
		s.From = from
	}
	if flags.Changed("adduct") {
		s.Adduct = adduct
	}
	if flags.Changed("show-filtered") {
		s.ShowFiltered = showFiltered
	}
	if flags.Changed("sort") {
		s.Sort = sortMode
	}
	if flags.Changed("order") {
		s.Order = sortOrder
	}
	if flags.Changed("ddof") {
		s.DDOF = ddof
	}

	return s, nil
}

// parseGroup parses CODE[:filter], e.g. "PSC" or "ECNC:0.05"
func parseGroup(arg string) (settings.Group, error) {
	code, threshold, hasFilter := strings.Cut(arg, ":")

	c, err := composition.Parse(code)
	if err != nil {
		return settings.Group{}, err
	}

	g := settings.Group{Composition: c}
	if hasFilter {
		g.Filter, err = strconv.ParseFloat(strings.TrimSpace(threshold), 64)
		if err != nil {
			return settings.Group{}, fmt.Errorf("invalid filter in group '%s': %w", arg, err)
		}
	}
	return g, nil
}

func formatGroups(groups []settings.Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.Composition.String()
		if g.Filter > 0 {
			parts[i] += fmt.Sprintf(" (> %g)", g.Filter)
		}
	}
	return strings.Join(parts, " > ")
}

// openCache returns a badger cache in --cache-dir, or a memory cache
func openCache() (cache.Cache, error) {
	if cacheDir == "" {
		return cache.NewMemory(settings.DefaultCacheSize)
	}
	c, err := cache.NewBadger(cache.BadgerConfig{Path: cacheDir})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, nil
}

// writeResult writes SQLite for .db outputs and text otherwise
func writeResult(res *compose.Result, cfg *settings.Config, fingerprint uint64) error {
	if strings.EqualFold(filepath.Ext(outputFile), ".db") {
		writer, err := sqlite.NewWriter(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		writer.Description = formatGroups(groupsOf(cfg))
		writer.Fingerprint = fingerprint

		if err := writer.WriteResult(res, cfg.Filter.Thresholds); err != nil {
			writer.Abort()
			return err
		}
		if err := writer.Finalize(); err != nil {
			return fmt.Errorf("failed to finalize database: %w", err)
		}
		logf("Output: %s\n", outputFile)
		return nil
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	} else {
		logf("\n")
	}

	if err := text.WriteResult(out, res, text.Options{GroupByFirst: groupedText}); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if outputFile != "" {
		logf("Output: %s\n", outputFile)
	}
	return nil
}

func groupsOf(cfg *settings.Config) []settings.Group {
	groups := make([]settings.Group, len(cfg.Groups))
	for i, c := range cfg.Groups {
		groups[i] = settings.Group{Composition: c}
		if i < len(cfg.Filter.Thresholds) {
			groups[i].Filter = cfg.Filter.Thresholds[i]
		}
	}
	return groups
}
