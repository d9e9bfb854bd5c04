package app

import (
	"context"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/importer"
)

type GenerateOrdersUseCase interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}

type ChangeOrderStatusUseCase interface {
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*ChangeStatusResult, error)
}

type CreatePlanUseCase interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*domain.MaintenancePlan, error)
}

type PreviewScheduleUseCase interface {
	Preview(ctx context.Context, code string, from time.Time, count int) ([]time.Time, error)
}

type ImportSeedUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	Import(ctx context.Context, seed *importer.Seed) (*ImportResult, error)
}
