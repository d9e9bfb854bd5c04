package domain

import (
	"fmt"
	"strings"
	"time"
)

type WorkOrder struct {
	ID       int64
	Number   string
	Type     string
	Priority string
	Status   OrderStatus

	Description  string
	Observations string

	// PlanID is the structured correlation to the originating plan. Orders
	// created by older code paths only carry the description marker.
	PlanID       *int64
	AssetID      *int64
	TechnicianID *int64

	EstimatedDurationMin int
	ScheduledDate        time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FormatOrderNumber renders OT-<6-digit-seq>.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("OT-%06d", seq)
}

// PlanMarker returns the description marker for a plan code.
func PlanMarker(code string) string {
	return "Plan: " + code
}

func (o *WorkOrder) IsOpen() bool {
	return o.Status == OrderPending || o.Status == OrderInProgress
}

func (o *WorkOrder) IsPreventive() bool {
	return o.Type == OrderTypePreventive
}

// TransitionTo moves the order to status at the given instant. It reports
// whether this call moved the order into Completed from another status.
func (o *WorkOrder) TransitionTo(status OrderStatus, at time.Time) (bool, error) {
	switch status {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
	default:
		return false, fmt.Errorf("invalid order status %q", status)
	}
	if o.Status == status {
		return false, nil
	}
	completedNow := status == OrderCompleted
	o.Status = status
	o.UpdatedAt = at
	if completedNow {
		done := at
		o.CompletedAt = &done
	} else {
		o.CompletedAt = nil
	}
	return completedNow, nil
}

// ContainsPlanMarker reports whether text holds "Plan: <code>" with the code
// not running on into further code characters, so PM-2025-0001 does not
// match a description for PM-2025-00012.
func ContainsPlanMarker(text, code string) bool {
	if code == "" {
		return false
	}
	marker := PlanMarker(code)
	for offset := 0; ; {
		i := strings.Index(text[offset:], marker)
		if i < 0 {
			return false
		}
		end := offset + i + len(marker)
		if end == len(text) || !isCodeChar(text[end]) {
			return true
		}
		offset = offset + i + 1
	}
}

func isCodeChar(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// OrderMatchesPlan is the dedup correlation: the structured plan reference
// first, then the legacy description marker.
func OrderMatchesPlan(o *WorkOrder, p *MaintenancePlan) bool {
	if o.PlanID != nil && *o.PlanID == p.ID {
		return true
	}
	return ContainsPlanMarker(o.Description, p.Code)
}

// NewPreventiveOrder builds the order a generation run creates for a due plan.
func NewPreventiveOrder(p *MaintenancePlan, number string, technicianID *int64, now time.Time) *WorkOrder {
	planID := p.ID
	desc := fmt.Sprintf("Preventive maintenance: %s - %s", p.Name, p.CorrelationMarker())

	obs := "Generated automatically from maintenance plan " + p.Code + "."
	if strings.TrimSpace(p.Instructions) != "" {
		obs += "\n\nInstructions:\n" + p.Instructions
	}

	return &WorkOrder{
		Number:               number,
		Type:                 OrderTypePreventive,
		Priority:             PriorityMedium,
		Status:               OrderPending,
		Description:          desc,
		Observations:         obs,
		PlanID:               &planID,
		AssetID:              p.AssetID,
		TechnicianID:         technicianID,
		EstimatedDurationMin: p.EstimatedDurationMin,
		ScheduledDate:        DateOnly(now),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
