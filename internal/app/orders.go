package app

import (
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

type ChangeStatusRequest struct {
	Number string
	Status domain.OrderStatus
	At     *time.Time
}

// ChangeStatusResult carries the updated order and, when the change completed
// a preventive order, the plan whose schedule moved.
type ChangeStatusResult struct {
	Order        *domain.WorkOrder
	Completed    bool
	AdvancedPlan *domain.MaintenancePlan
}

type CreatePlanRequest struct {
	Name                 string
	AssetCode            string
	Recurrence           domain.Recurrence
	AutomaticGeneration  bool
	Status               domain.PlanStatus
	EstimatedDurationMin int
	Instructions         string
	// FirstOccurrence overrides the computed initial next occurrence.
	FirstOccurrence *time.Time
	Now             *time.Time
}

type ImportResult struct {
	Assets      int
	Technicians int
	Plans       int
}
