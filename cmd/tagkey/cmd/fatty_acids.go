package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/TAGKey/pkg/reconcile"
	"github.com/ChrisMcGann/TAGKey/pkg/writer/text"
)

var fattyAcidsCmd = &cobra.Command{
	Use:   "fatty-acids",
	Short: "Print the reconciled fatty acid table",
	Long: `Join the input samples on their fatty acids and print one row per fatty
acid with its derived columns (ECN, mass, saturation, unsaturation) and the
TAG, DAG1223 and MAG2 values of every sample. Values missing from a sample
are printed as "-".

Examples:
  tagkey fatty-acids --in r1.csv --in r2.csv
  tagkey fatty-acids --in r1.csv,r2.csv --index 1`,
	RunE: runFattyAcids,
}

func runFattyAcids(cmd *cobra.Command, args []string) error {
	samples, err := loadSamples(inputFiles)
	if err != nil {
		return err
	}

	table, err := reconcile.Reconcile(samples, selectedIndex())
	if err != nil {
		return err
	}

	logf("Fatty acids: %d\n\n", len(table.Rows))
	if err := text.WriteFattyAcids(os.Stdout, table); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
