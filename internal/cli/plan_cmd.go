package cli

import (
	"fmt"
	"strings"
	"time"

	gmaoapp "github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/cli/formatter"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage maintenance plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanNextCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var (
		name, assetCode, kind, weekdays, weekday, frequency string
		statusFlag, instructions, first                     string
		dayOfMonth, weekOfMonth, intervalWeeks              int
		intervalMonths, durationMin                         int
		automatic                                           bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a maintenance plan",
		Example: `  gmao plan add --name "Boiler inspection" --asset BOILER-01 --kind weekly --weekdays monday,thursday --auto
  gmao plan add --name "Filter swap" --kind monthly --day 31 --interval-months 3
  gmao plan add --name "Fire drill" --kind monthly --week 1 --weekday saturday
  gmao plan add --name "Legacy check" --frequency Quarterly`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := domain.RecurrenceFields{
				Kind:      kind,
				Weekday:   weekday,
				Frequency: frequency,
			}
			if weekdays != "" {
				for _, d := range strings.Split(weekdays, ",") {
					fields.Weekdays = append(fields.Weekdays, strings.TrimSpace(d))
				}
			}
			flags := cmd.Flags()
			if flags.Changed("day") {
				fields.DayOfMonth = &dayOfMonth
			}
			if flags.Changed("week") {
				fields.WeekOfMonth = &weekOfMonth
			}
			if flags.Changed("interval-weeks") {
				fields.IntervalWeeks = &intervalWeeks
			}
			if flags.Changed("interval-months") {
				fields.IntervalMonths = &intervalMonths
			}

			rec, err := domain.ParseRecurrence(fields)
			if err != nil {
				return err
			}

			req := gmaoapp.CreatePlanRequest{
				Name:                 name,
				AssetCode:            assetCode,
				Recurrence:           rec,
				AutomaticGeneration:  automatic,
				EstimatedDurationMin: durationMin,
				Instructions:         instructions,
			}
			now := app.now()
			req.Now = &now
			if statusFlag != "" {
				if req.Status, err = domain.ParsePlanStatus(statusFlag); err != nil {
					return err
				}
			}
			if req.FirstOccurrence, err = optionalInstant(first); err != nil {
				return err
			}

			plan, err := app.Plans.CreatePlan(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanCreated(plan))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "plan name")
	f.StringVar(&assetCode, "asset", "", "asset code")
	f.StringVar(&kind, "kind", "", "recurrence kind: daily, weekly, monthly, monthly_by_day, monthly_by_weekday")
	f.StringVar(&weekdays, "weekdays", "", "comma-separated weekdays for weekly plans")
	f.StringVar(&weekday, "weekday", "", "weekday for monthly_by_weekday plans")
	f.IntVar(&dayOfMonth, "day", 0, "day of month (1-31) for monthly plans")
	f.IntVar(&weekOfMonth, "week", 0, "week of month (1-4), selects the nth-weekday form of monthly")
	f.IntVar(&intervalWeeks, "interval-weeks", 1, "weeks between weekly occurrences")
	f.IntVar(&intervalMonths, "interval-months", 1, "months between monthly occurrences")
	f.StringVar(&frequency, "frequency", "", "legacy label: Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly")
	f.StringVar(&statusFlag, "status", "", "active, inactive or paused (default active)")
	f.BoolVar(&automatic, "auto", false, "include the plan in automatic generation runs")
	f.IntVar(&durationMin, "duration", 0, "estimated duration in minutes")
	f.StringVar(&instructions, "instructions", "", "instructions copied into generated orders")
	f.StringVar(&first, "first", "", "first occurrence (YYYY-MM-DD or RFC3339)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var statusFlag, assetCode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var filter repository.PlanFilter
			if statusFlag != "" {
				s, err := domain.ParsePlanStatus(statusFlag)
				if err != nil {
					return err
				}
				filter.Status = s
			}
			if assetCode != "" {
				asset, err := app.Assets.GetByCode(ctx, assetCode)
				if err != nil {
					return fmt.Errorf("asset %s: %w", assetCode, err)
				}
				filter.AssetID = &asset.ID
			}

			plans, err := app.Plans.List(ctx, filter)
			if err != nil {
				return err
			}
			codes, err := assetCodeIndex(cmd, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, codes, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "filter by status")
	cmd.Flags().StringVar(&assetCode, "asset", "", "filter by asset code")

	return cmd
}

func newPlanNextCmd(app *App) *cobra.Command {
	var count int
	var from string

	cmd := &cobra.Command{
		Use:   "next <code>",
		Short: "Preview the upcoming occurrences of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			plan, err := app.Plans.GetByCode(ctx, args[0])
			if err != nil {
				return fmt.Errorf("plan %s: %w", args[0], err)
			}
			start, err := optionalInstant(from)
			if err != nil {
				return err
			}
			var ref time.Time
			if start != nil {
				ref = *start
			}

			dates, err := app.Plans.Preview(ctx, plan.Code, ref, count)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPreview(plan, dates))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of occurrences")
	cmd.Flags().StringVar(&from, "from", "", "start after this instant instead of the stored next occurrence")

	return cmd
}

func assetCodeIndex(cmd *cobra.Command, app *App) (map[int64]string, error) {
	assets, err := app.Assets.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	idx := make(map[int64]string, len(assets))
	for _, a := range assets {
		idx[a.ID] = a.Code
	}
	return idx, nil
}
