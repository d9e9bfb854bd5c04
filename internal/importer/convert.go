package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// PlanDraft is a converted plan whose asset is still a code reference and
// whose code may still be empty.
type PlanDraft struct {
	Plan      *domain.MaintenancePlan
	AssetCode string
}

type Converted struct {
	Assets      []*domain.Asset
	Technicians []*domain.Technician
	Plans       []PlanDraft
}

// Convert transforms a validated Seed into domain objects ready for
// persistence. Call ValidateSeed first; Convert assumes the seed is valid.
func Convert(seed *Seed, now time.Time) (*Converted, error) {
	out := &Converted{}

	for _, a := range seed.Assets {
		out.Assets = append(out.Assets, &domain.Asset{
			Code:      strings.ToUpper(strings.TrimSpace(a.Code)),
			Name:      a.Name,
			Location:  a.Location,
			CreatedAt: now,
		})
	}

	for _, t := range seed.Technicians {
		role, err := domain.ParseTechnicianRole(
			domain.FirstNonZero(t.Role, seed.Defaults.Role, string(domain.RoleTechnician)))
		if err != nil {
			return nil, fmt.Errorf("technician %q: %w", t.Name, err)
		}
		out.Technicians = append(out.Technicians, &domain.Technician{
			Name:      t.Name,
			Email:     t.Email,
			Role:      role,
			Active:    domain.ValueOr(true, t.Active),
			CreatedAt: now,
		})
	}

	for _, p := range seed.Plans {
		draft, err := convertPlan(p, seed.Defaults, now)
		if err != nil {
			return nil, fmt.Errorf("plan %q: %w", p.Name, err)
		}
		out.Plans = append(out.Plans, draft)
	}

	return out, nil
}

func convertPlan(p PlanImport, defaults SeedDefaults, now time.Time) (PlanDraft, error) {
	status, err := domain.ParsePlanStatus(
		domain.FirstNonZero(p.Status, defaults.Status, string(domain.PlanActive)))
	if err != nil {
		return PlanDraft{}, err
	}

	rec, err := domain.ParseRecurrence(p.Recurrence.fields())
	if err != nil {
		return PlanDraft{}, fmt.Errorf("recurrence: %w", err)
	}

	var next *time.Time
	if p.NextOccurrence != nil {
		t, err := parseInstant(*p.NextOccurrence)
		if err != nil {
			return PlanDraft{}, fmt.Errorf("next_occurrence: %w", err)
		}
		next = &t
	}

	return PlanDraft{
		AssetCode: strings.ToUpper(strings.TrimSpace(p.Asset)),
		Plan: &domain.MaintenancePlan{
			Code:                 strings.ToUpper(strings.TrimSpace(p.Code)),
			Name:                 p.Name,
			Status:               status,
			AutomaticGeneration:  domain.ValueOr(false, p.Automatic, defaults.Automatic),
			Recurrence:           domain.FieldsFor(rec),
			NextOccurrence:       next,
			EstimatedDurationMin: domain.ValueOr(0, p.EstimatedDurationMin, defaults.EstimatedDurationMin),
			Instructions:         p.Instructions,
			CreatedAt:            now,
			UpdatedAt:            now,
		},
	}, nil
}

func (r RecurrenceImport) fields() domain.RecurrenceFields {
	return domain.RecurrenceFields{
		Kind:           r.Kind,
		DayOfMonth:     r.DayOfMonth,
		WeekOfMonth:    r.WeekOfMonth,
		Weekdays:       r.Weekdays,
		Weekday:        r.Weekday,
		IntervalWeeks:  r.IntervalWeeks,
		IntervalMonths: r.IntervalMonths,
		Frequency:      r.Frequency,
		FrequencyDays:  r.FrequencyDays,
	}
}

// parseInstant accepts RFC 3339 or a bare YYYY-MM-DD date (UTC midnight).
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}
