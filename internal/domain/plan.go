package domain

import (
	"fmt"
	"regexp"
	"time"
)

var planCodePattern = regexp.MustCompile(`^PM-[0-9]{4}-[0-9]{4,}$`)

type MaintenancePlan struct {
	ID                  int64
	Code                string
	Name                string
	Status              PlanStatus
	AutomaticGeneration bool
	AssetID             *int64
	Recurrence          RecurrenceFields

	// Schedule state, the only fields the generation pipeline writes.
	LastOccurrence *time.Time
	NextOccurrence *time.Time

	EstimatedDurationMin int
	Instructions         string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PlanCodePrefix is the year-scoped prefix used to find the current sequence.
func PlanCodePrefix(year int) string {
	return fmt.Sprintf("PM-%04d-", year)
}

// FormatPlanCode renders PM-<year>-<4-digit-seq>.
func FormatPlanCode(year, seq int) string {
	return fmt.Sprintf("PM-%04d-%04d", year, seq)
}

// ValidateCode checks the plan code format.
func (p *MaintenancePlan) ValidateCode() error {
	if p.Code == "" {
		return fmt.Errorf("plan code is required")
	}
	if !planCodePattern.MatchString(p.Code) {
		return fmt.Errorf("plan code %q must look like PM-2025-0001", p.Code)
	}
	return nil
}

// IsDue reports whether the plan is active and its next occurrence is at or
// before now.
func (p *MaintenancePlan) IsDue(now time.Time) bool {
	return p.Status == PlanActive && p.NextOccurrence != nil && !p.NextOccurrence.After(now)
}

// CorrelationMarker is the greppable text embedded in generated order
// descriptions.
func (p *MaintenancePlan) CorrelationMarker() string {
	return PlanMarker(p.Code)
}

// ApplyOccurrence advances the schedule. next must be strictly after ref.
func (p *MaintenancePlan) ApplyOccurrence(ref, next time.Time) error {
	if !next.After(ref) {
		return fmt.Errorf("plan %s: next occurrence %s is not after %s",
			p.Code, next.Format(time.RFC3339), ref.Format(time.RFC3339))
	}
	last := ref
	p.LastOccurrence = &last
	p.NextOccurrence = &next
	p.UpdatedAt = ref
	return nil
}
