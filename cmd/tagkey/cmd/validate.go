package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChrisMcGann/TAGKey/pkg/core"
	"github.com/ChrisMcGann/TAGKey/pkg/reader/csv"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate sample files",
	Long: `Validate that sample files are properly formatted: the required columns are
present, fatty acids parse and satisfy their invariants, and labels are unique.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	invalid := 0
	for _, path := range args {
		s, err := csv.LoadFile(path)
		if err != nil {
			invalid++
			var schemaErr *core.SchemaError
			if errors.As(err, &schemaErr) {
				fmt.Fprintf(os.Stderr, "Warning: %s: invalid %s: %s\n", path, schemaErr.Field, schemaErr.Message)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			continue
		}
		logf("%s: OK (%d fatty acids)\n", path, len(s.Rows))
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, len(args))
	}
	return nil
}
