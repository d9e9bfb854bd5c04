package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// FormatPlanList renders plans with their recurrence and due state.
// assetCodes maps asset id to code; missing entries print as a dash.
func FormatPlanList(plans []*domain.MaintenancePlan, assetCodes map[int64]string, now time.Time) string {
	if len(plans) == 0 {
		return StyleDim.Render("No maintenance plans.") + "\n"
	}

	t := NewTable("CODE", "NAME", "ASSET", "STATUS", "AUTO", "RECURRENCE", "NEXT", "DUE")
	for _, p := range plans {
		asset := none
		if p.AssetID != nil {
			if code, ok := assetCodes[*p.AssetID]; ok {
				asset = code
			}
		}
		auto := StyleDim.Render("no")
		if p.AutomaticGeneration {
			auto = StyleGreen.Render("yes")
		}
		t.AddRow(
			p.Code,
			Truncate(p.Name, 32),
			asset,
			PlanStatusStyled(p.Status),
			auto,
			describeRecurrence(p.Recurrence),
			FormatDate(p.NextOccurrence),
			DueLabelStyled(p.NextOccurrence, now),
		)
	}
	return t.Render()
}

// FormatPlanCreated confirms a new plan.
func FormatPlanCreated(p *domain.MaintenancePlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n", StyleGreen.Render("Created plan"), Bold(p.Code), p.Name)
	fmt.Fprintf(&b, "  recurrence  %s\n", describeRecurrence(p.Recurrence))
	fmt.Fprintf(&b, "  next        %s\n", FormatDate(p.NextOccurrence))
	return b.String()
}

// FormatPreview lists upcoming occurrences of a plan.
func FormatPreview(p *domain.MaintenancePlan, dates []time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Header(p.Code), p.Name)
	fmt.Fprintf(&b, "%s\n\n", StyleDim.Render(describeRecurrence(p.Recurrence)))
	t := NewTable("#", "DATE", "WEEKDAY").AlignRight(0)
	for i, d := range dates {
		t.AddRow(fmt.Sprint(i+1), FormatDate(&d), d.Weekday().String())
	}
	b.WriteString(t.Render())
	return b.String()
}

// describeRecurrence prints the parsed rule, or the raw fields flagged as
// invalid when they do not parse.
func describeRecurrence(f domain.RecurrenceFields) string {
	rec, err := domain.ParseRecurrence(f)
	if err != nil {
		label := f.Kind
		if label == "" {
			label = f.Frequency
		}
		if label == "" {
			label = "unset"
		}
		return StyleRed.Render(label + " (invalid)")
	}
	return rec.Describe()
}
