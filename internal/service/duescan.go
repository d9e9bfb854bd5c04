package service

import (
	"context"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
)

// DueScanner selects the plans a run must process.
type DueScanner struct {
	plans repository.PlanRepo
}

func NewDueScanner(plans repository.PlanRepo) *DueScanner {
	return &DueScanner{plans: plans}
}

// Scan returns active plans whose next occurrence is at or before now, in id
// order. Automatic mode only sees plans with automatic generation enabled;
// manual mode sees every due plan.
func (s *DueScanner) Scan(ctx context.Context, mode domain.RunMode, now time.Time) ([]*domain.MaintenancePlan, error) {
	var automaticOnly bool
	switch mode {
	case domain.ModeAutomatic:
		automaticOnly = true
	case domain.ModeManual:
	default:
		return nil, fmt.Errorf("invalid run mode %q", mode)
	}
	due, err := s.plans.ListDue(ctx, now, automaticOnly)
	if err != nil {
		return nil, fmt.Errorf("listing due plans: %w", err)
	}
	return due, nil
}
