package formatter

import (
	"fmt"
	"strings"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

// FormatOrderList renders work orders. techNames maps technician id to name.
func FormatOrderList(orders []*domain.WorkOrder, techNames map[int64]string) string {
	if len(orders) == 0 {
		return StyleDim.Render("No work orders.") + "\n"
	}

	t := NewTable("NUMBER", "TYPE", "STATUS", "TECHNICIAN", "SCHEDULED", "DESCRIPTION")
	for _, o := range orders {
		tech := StyleDim.Render("unassigned")
		if o.TechnicianID != nil {
			if name, ok := techNames[*o.TechnicianID]; ok {
				tech = name
			} else {
				tech = fmt.Sprintf("#%d", *o.TechnicianID)
			}
		}
		kind := "corrective"
		if o.IsPreventive() {
			kind = "preventive"
		}
		sched := o.ScheduledDate
		t.AddRow(
			o.Number,
			kind,
			OrderStatusStyled(o.Status),
			tech,
			FormatDate(&sched),
			Truncate(firstLine(o.Description), 48),
		)
	}
	return t.Render()
}

// FormatStatusChange reports a status change and any plan it advanced.
func FormatStatusChange(r *app.ChangeStatusResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(r.Order.Number), OrderStatusStyled(r.Order.Status))
	if r.Order.CompletedAt != nil {
		fmt.Fprintf(&b, "  completed  %s\n", FormatDate(r.Order.CompletedAt))
	}
	if r.AdvancedPlan != nil {
		fmt.Fprintf(&b, "  plan %s advanced, next %s\n",
			Bold(r.AdvancedPlan.Code), FormatDate(r.AdvancedPlan.NextOccurrence))
	} else if r.Completed {
		fmt.Fprintf(&b, "  %s\n", StyleDim.Render("no plan advanced"))
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
