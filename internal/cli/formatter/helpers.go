package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	none           = "-"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)

	if title != "" {
		return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}

// FormatDate renders a date, or a dash for nil. Midnight values drop the
// clock.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return none
	}
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 {
		return u.Format(dateLayout)
	}
	return u.Format(dateTimeLayout)
}

// DueLabel describes a next occurrence relative to now.
func DueLabel(next *time.Time, now time.Time) string {
	if next == nil {
		return "unscheduled"
	}
	if !next.After(now) {
		late := int(now.Sub(*next).Hours() / 24)
		if late == 0 {
			return "due"
		}
		return fmt.Sprintf("overdue %dd", late)
	}
	days := int(next.Sub(now).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 14:
		return fmt.Sprintf("in %dd", days)
	case days < 60:
		return fmt.Sprintf("in %dw", days/7)
	default:
		return fmt.Sprintf("in %dmo", days/30)
	}
}

// DueLabelStyled applies urgency colouring to DueLabel.
func DueLabelStyled(next *time.Time, now time.Time) string {
	text := DueLabel(next, now)
	switch {
	case next == nil:
		return StyleDim.Render(text)
	case !next.After(now):
		return StyleRed.Render(text)
	case next.Sub(now) <= 7*24*time.Hour:
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// Truncate shortens s to n visible characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
