package formatter

import (
	"fmt"
	"strings"

	"github.com/canaleta14-ai/gmao/internal/app"
)

// FormatRunResult renders the outcome of a generation run: a summary line,
// the created orders and any per-plan failures.
func FormatRunResult(r *app.RunResult) string {
	var b strings.Builder

	status := StyleGreen.Render("OK")
	if !r.Success {
		status = StyleRed.Render("FAILED")
	}
	fmt.Fprintf(&b, "%s  %s %s  %s\n",
		Header("GENERATION RUN"), status,
		StyleDim.Render(string(r.Mode)), StyleDim.Render(r.RunID))

	if r.Error != "" {
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("error:"), r.Error)
	}

	fmt.Fprintf(&b, "scanned %s  created %s  skipped %s  failed %s\n",
		Bold(fmt.Sprint(r.PlansScanned)),
		StyleGreen.Render(fmt.Sprint(r.OrdersCreated)),
		StyleYellow.Render(fmt.Sprint(r.Skipped)),
		countStyled(len(r.Errors)))

	if len(r.Details) > 0 {
		b.WriteString("\n")
		t := NewTable("ORDER", "PLAN", "ASSET", "TECHNICIAN", "NEXT")
		for _, d := range r.Details {
			next := d.NextOccurrence
			nextCell := FormatDate(&next)
			if d.Fallback {
				nextCell += StyleYellow.Render(" (fallback)")
			}
			tech := d.TechnicianName
			if tech == "" {
				tech = StyleDim.Render("unassigned")
			}
			asset := d.AssetName
			if asset == "" {
				asset = none
			}
			t.AddRow(d.OrderNumber, d.PlanCode, Truncate(asset, 28), tech, nextCell)
		}
		b.WriteString(t.Render())
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n" + StyleRed.Render("Plan errors") + "\n")
		for _, e := range r.Errors {
			code := e.PlanCode
			if code == "" {
				code = fmt.Sprintf("#%d", e.PlanID)
			}
			fmt.Fprintf(&b, "  %s %s\n", Bold(code), e.Message)
		}
	}

	return b.String()
}

func countStyled(n int) string {
	if n == 0 {
		return StyleDim.Render("0")
	}
	return StyleRed.Render(fmt.Sprint(n))
}
