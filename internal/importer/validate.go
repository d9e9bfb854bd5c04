package importer

import (
	"fmt"
	"strings"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// ValidateSeed checks the seed before conversion and returns every problem
// found.
func ValidateSeed(seed *Seed) []error {
	var errs []error

	if r := seed.Defaults.Role; r != "" {
		if _, err := domain.ParseTechnicianRole(r); err != nil {
			errs = append(errs, fmt.Errorf("defaults.role: %w", err))
		}
	}
	if s := seed.Defaults.Status; s != "" {
		if _, err := domain.ParsePlanStatus(s); err != nil {
			errs = append(errs, fmt.Errorf("defaults.status: %w", err))
		}
	}
	if d := seed.Defaults.EstimatedDurationMin; d != nil && *d < 0 {
		errs = append(errs, fmt.Errorf("defaults.estimated_duration_min must not be negative"))
	}

	assetCodes := make(map[string]bool)
	for i, a := range seed.Assets {
		prefix := fmt.Sprintf("assets[%d]", i)
		if a.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		} else if assetCodes[strings.ToUpper(a.Code)] {
			errs = append(errs, fmt.Errorf("%s.code %q is duplicated", prefix, a.Code))
		}
		assetCodes[strings.ToUpper(a.Code)] = true
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	for i, t := range seed.Technicians {
		prefix := fmt.Sprintf("technicians[%d]", i)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.Role != "" {
			if _, err := domain.ParseTechnicianRole(t.Role); err != nil {
				errs = append(errs, fmt.Errorf("%s.role: %w", prefix, err))
			}
		}
	}

	planCodes := make(map[string]bool)
	for i, p := range seed.Plans {
		errs = append(errs, validatePlan(fmt.Sprintf("plans[%d]", i), p, planCodes)...)
	}

	return errs
}

// validatePlan checks one plan. Asset references may name assets already in
// the store; they are resolved at import time.
func validatePlan(prefix string, p PlanImport, codes map[string]bool) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if p.Code != "" {
		candidate := domain.MaintenancePlan{Code: p.Code}
		if err := candidate.ValidateCode(); err != nil {
			errs = append(errs, fmt.Errorf("%s.code: %w", prefix, err))
		} else if codes[strings.ToUpper(p.Code)] {
			errs = append(errs, fmt.Errorf("%s.code %q is duplicated", prefix, p.Code))
		}
		codes[strings.ToUpper(p.Code)] = true
	}
	if p.Status != "" {
		if _, err := domain.ParsePlanStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: %w", prefix, err))
		}
	}
	if _, err := domain.ParseRecurrence(p.Recurrence.fields()); err != nil {
		errs = append(errs, fmt.Errorf("%s.recurrence: %w", prefix, err))
	}
	if p.NextOccurrence != nil {
		if _, err := parseInstant(*p.NextOccurrence); err != nil {
			errs = append(errs, fmt.Errorf("%s.next_occurrence: %w", prefix, err))
		}
	}
	if p.EstimatedDurationMin != nil && *p.EstimatedDurationMin < 0 {
		errs = append(errs, fmt.Errorf("%s.estimated_duration_min must not be negative", prefix))
	}

	return errs
}
