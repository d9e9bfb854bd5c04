package repository

import (
	"context"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

type AssetRepo interface {
	Create(ctx context.Context, a *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	GetByCode(ctx context.Context, code string) (*domain.Asset, error)
	List(ctx context.Context) ([]*domain.Asset, error)
}

type TechnicianRepo interface {
	Create(ctx context.Context, t *domain.Technician) error
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
	GetByEmail(ctx context.Context, email string) (*domain.Technician, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error)
	// ListEligibleWithLoad returns active technicians with an eligible role
	// and their count of Pending and In Progress orders.
	ListEligibleWithLoad(ctx context.Context) ([]domain.TechnicianLoad, error)
}

// PlanFilter narrows List; zero values mean "any".
type PlanFilter struct {
	Status  domain.PlanStatus
	AssetID *int64
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.MaintenancePlan) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenancePlan, error)
	GetByCode(ctx context.Context, code string) (*domain.MaintenancePlan, error)
	List(ctx context.Context, f PlanFilter) ([]*domain.MaintenancePlan, error)
	// ListDue returns active plans whose next occurrence is at or before now,
	// ordered by id. automaticOnly additionally requires the automatic flag.
	ListDue(ctx context.Context, now time.Time, automaticOnly bool) ([]*domain.MaintenancePlan, error)
	// UpdateSchedule persists last/next occurrence and updated_at only.
	UpdateSchedule(ctx context.Context, p *domain.MaintenancePlan) error
	// NextCodeSeq returns the next free sequence for PM-<year>-NNNN codes.
	NextCodeSeq(ctx context.Context, year int) (int, error)
}

// WorkOrderFilter narrows List; zero values mean "any".
type WorkOrderFilter struct {
	Status       domain.OrderStatus
	TechnicianID *int64
	PlanID       *int64
	Limit        int
}

type WorkOrderRepo interface {
	Create(ctx context.Context, o *domain.WorkOrder) error
	GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error)
	GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error)
	List(ctx context.Context, f WorkOrderFilter) ([]*domain.WorkOrder, error)
	// ListOpenPreventive returns Pending and In Progress preventive orders on
	// the asset. A nil assetID matches orders without an asset.
	ListOpenPreventive(ctx context.Context, assetID *int64) ([]*domain.WorkOrder, error)
	UpdateStatus(ctx context.Context, o *domain.WorkOrder) error
	// NextNumber derives OT-NNNNNN from the highest existing id.
	NextNumber(ctx context.Context) (string, error)
}
