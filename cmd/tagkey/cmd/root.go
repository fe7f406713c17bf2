// Package cmd provides CLI command implementations
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reader/csv"
)

// customAdductsFile is loaded from the working directory when present
const customAdductsFile = "adducts_custom.csv"

var (
	// Shared flags
	inputFiles  []string
	sampleIndex int
	quiet       bool

	// Flags for compose command
	groupArgs    []string
	method       string
	from         string
	adduct       string
	adductsCSV   string
	showFiltered bool
	sortMode     string
	sortOrder    string
	ddof         int
	settingsFile string
	outputFile   string
	cacheDir     string
	groupedText  bool
)

var rootCmd = &cobra.Command{
	Use:   "tagkey",
	Short: "TAGKey - Triacylglycerol composition tool",
	Long: `TAGKey derives triacylglycerol (TAG) compositions from fatty acid
measurements of TAG, sn-1,2/2,3 DAG and sn-2 MAG fractions.

Samples are CSV tables with the columns Label, FattyAcid, TAG, DAG1223 and MAG2.
Supported compositions:
- Species (SSC, PSC, NSC) and type (STC, PTC, NTC)
- Equivalent carbon number (SECNC, PECNC, NECNC, ECNC)
- Unsaturation (SUC, PUC, NUC, UC) and mass (MC)`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(fattyAcidsCmd)
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	for _, c := range []*cobra.Command{composeCmd, fattyAcidsCmd} {
		c.Flags().StringSliceVarP(&inputFiles, "in", "i", nil, "Input sample CSV files (required, repeatable)")
		c.Flags().IntVar(&sampleIndex, "index", -1, "Use only the sample at this index (-1 = aggregate all samples)")
		c.MarkFlagRequired("in")
	}

	// Compose command flags
	composeCmd.Flags().StringArrayVarP(&groupArgs, "group", "g", nil, "Composition level CODE[:filter], outermost first (repeatable, default NSC)")
	composeCmd.Flags().StringVar(&method, "method", "vanderwal", "Calculation method: vanderwal or gunstone")
	composeCmd.Flags().StringVar(&from, "from", "dag1223", "Source of sn-1,3 fractions: dag1223 or mag2")
	composeCmd.Flags().StringVar(&adduct, "adduct", "None", "Adduct name or mass shift for mass compositions")
	composeCmd.Flags().StringVar(&adductsCSV, "adducts", "", "Path to adduct CSV file (name,mass)")
	composeCmd.Flags().BoolVar(&showFiltered, "show-filtered", false, "Keep rows below the filter thresholds")
	composeCmd.Flags().StringVar(&sortMode, "sort", "key", "Sort by: key or value")
	composeCmd.Flags().StringVar(&sortOrder, "order", "ascending", "Sort order: ascending or descending")
	composeCmd.Flags().IntVar(&ddof, "ddof", 1, "Delta degrees of freedom for the standard deviation (0, 1 or 2)")
	composeCmd.Flags().StringVar(&settingsFile, "settings", "", "Path to YAML settings file (flags override it)")
	composeCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file: .db for SQLite, anything else for text (default stdout)")
	composeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for a persistent result cache")
	composeCmd.Flags().BoolVar(&groupedText, "grouped", false, "Group text output by the first level")
}

// logf prints a progress line unless --quiet is set
func logf(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Printf(format, args...)
}

// loadSamples reads every input file as a sample
func loadSamples(paths []string) ([]*core.Sample, error) {
	samples := make([]*core.Sample, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("input file does not exist: %s", path)
		}
		s, err := csv.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logf("Loaded %s: %d fatty acids\n", s.Name(), len(s.Rows))
		samples = append(samples, s)
	}
	return samples, nil
}

// selectedIndex converts the --index flag into an optional index
func selectedIndex() *int {
	if sampleIndex < 0 {
		return nil
	}
	i := sampleIndex
	return &i
}

// loadAdducts builds the adduct database: built-ins, then adducts_custom.csv,
// then the --adducts file
func loadAdducts() (*core.AdductDatabase, error) {
	db := core.DefaultAdductDatabase()

	if _, err := os.Stat(customAdductsFile); err == nil {
		f, err := os.Open(customAdductsFile)
		if err == nil {
			if err := db.LoadFromCSV(f); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", customAdductsFile, err)
			}
			f.Close()
		}
	}

	if adductsCSV != "" {
		f, err := os.Open(adductsCSV)
		if err != nil {
			return nil, fmt.Errorf("failed to open adduct CSV: %w", err)
		}
		defer f.Close()
		if err := db.LoadFromCSV(f); err != nil {
			return nil, fmt.Errorf("failed to load adduct CSV: %w", err)
		}
		logf("Loaded adducts from %s\n", adductsCSV)
	}

	return db, nil
}
