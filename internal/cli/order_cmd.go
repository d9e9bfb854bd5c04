package cli

import (
	"fmt"

	gmaoapp "github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/cli/formatter"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/spf13/cobra"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect and update work orders",
	}

	cmd.AddCommand(
		newOrderListCmd(app),
		newOrderStatusCmd(app),
	)

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	var status orderStatusValue
	var planCode string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter := repository.WorkOrderFilter{
				Status: domain.OrderStatus(status),
				Limit:  limit,
			}
			if planCode != "" {
				plan, err := app.Plans.GetByCode(ctx, planCode)
				if err != nil {
					return fmt.Errorf("plan %s: %w", planCode, err)
				}
				filter.PlanID = &plan.ID
			}

			orders, err := app.Orders.List(ctx, filter)
			if err != nil {
				return err
			}
			techs, err := app.Technicians.List(ctx, true)
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(techs))
			for _, t := range techs {
				names[t.ID] = t.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOrderList(orders, names))
			return nil
		},
	}

	cmd.Flags().Var(&status, "status", "filter by status: pending, in_progress, completed, cancelled")
	cmd.Flags().StringVar(&planCode, "plan", "", "filter by plan code")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of orders")

	return cmd
}

func newOrderStatusCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "status <number> <status>",
		Short: "Change a work order's status",
		Long: `Change a work order's status. Completing a preventive order advances the
schedule of the plan it was generated from.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseOrderStatus(args[1])
			if err != nil {
				return err
			}
			req := gmaoapp.ChangeStatusRequest{Number: args[0], Status: status}
			if req.At, err = optionalInstant(at); err != nil {
				return err
			}

			result, err := app.Orders.ChangeStatus(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatusChange(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant of the change (YYYY-MM-DD or RFC3339), defaults to now")

	return cmd
}
