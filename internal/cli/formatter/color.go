package formatter

import (
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Bold(true)
)

func Header(text string) string { return StyleHeader.Render(text) }

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }

// OrderStatusStyled colours a work order status by how much attention it
// needs.
func OrderStatusStyled(s domain.OrderStatus) string {
	switch s {
	case domain.OrderPending:
		return StyleYellow.Render(string(s))
	case domain.OrderInProgress:
		return StyleBlue.Render(string(s))
	case domain.OrderCompleted:
		return StyleGreen.Render(string(s))
	case domain.OrderCancelled:
		return StyleDim.Render(string(s))
	}
	return string(s)
}

func PlanStatusStyled(s domain.PlanStatus) string {
	switch s {
	case domain.PlanActive:
		return StyleGreen.Render(string(s))
	case domain.PlanPaused:
		return StyleYellow.Render(string(s))
	}
	return StyleDim.Render(string(s))
}
