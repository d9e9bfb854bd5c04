package service

import (
	"context"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/importer"
	"github.com/canaleta14-ai/gmao/internal/repository"
)

type GenerationService interface {
	Run(ctx context.Context, req app.RunRequest) (*app.RunResult, error)
}

// CompletionService runs the completion trigger on its own transaction for an
// order already stored as completed. ChangeStatus runs the same step inside
// its own transaction.
type CompletionService interface {
	OnOrderCompleted(ctx context.Context, order *domain.WorkOrder, at time.Time) (*domain.MaintenancePlan, error)
}

type WorkOrderService interface {
	ChangeStatus(ctx context.Context, req app.ChangeStatusRequest) (*app.ChangeStatusResult, error)
	GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error)
	List(ctx context.Context, f repository.WorkOrderFilter) ([]*domain.WorkOrder, error)
}

type PlanService interface {
	CreatePlan(ctx context.Context, req app.CreatePlanRequest) (*domain.MaintenancePlan, error)
	GetByCode(ctx context.Context, code string) (*domain.MaintenancePlan, error)
	List(ctx context.Context, f repository.PlanFilter) ([]*domain.MaintenancePlan, error)
	Preview(ctx context.Context, code string, from time.Time, count int) ([]time.Time, error)
}

type TechnicianService interface {
	Create(ctx context.Context, t *domain.Technician) error
	List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error)
	Roster(ctx context.Context) ([]domain.TechnicianLoad, error)
}

type AssetService interface {
	Create(ctx context.Context, a *domain.Asset) error
	GetByCode(ctx context.Context, code string) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*app.ImportResult, error)
	Import(ctx context.Context, seed *importer.Seed) (*app.ImportResult, error)
}
