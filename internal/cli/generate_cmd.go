package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	gmaoapp "github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/cli/formatter"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var mode domain.RunMode
	var nowFlag string
	var yes, asJSON bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create work orders for every due maintenance plan",
		Long: `Scan due plans, create one preventive work order per plan that has no
open order yet, assign it to the least-loaded technician and advance the
plan's schedule.

automatic mode only considers plans with automatic generation enabled;
manual mode processes every active due plan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := gmaoapp.NewRunRequest(mode, gmaoapp.TriggerCLI)
			now, err := optionalInstant(nowFlag)
			if err != nil {
				return err
			}
			req.Now = now

			if mode == domain.ModeManual && !yes && app.interactive() {
				ok, err := app.confirm(
					"Generate work orders for all due plans?",
					"Manual mode includes plans without automatic generation.",
				)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Aborted."))
					return nil
				}
			}

			result, err := app.Generation.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunResult(result))
			}

			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		},
	}

	cmd.Flags().Var(newRunModeValue(domain.ModeManual, &mode), "mode", "run mode: automatic or manual")
	cmd.Flags().StringVar(&nowFlag, "now", "", "reference instant (YYYY-MM-DD or RFC3339), defaults to the current time")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the run result as JSON")

	return cmd
}
