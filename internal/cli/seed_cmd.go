package cli

import (
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Import assets, technicians and plans from a YAML or JSON file",
		Long: `Import a seed file in a single transaction. Either every record is
created or none is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}
