package service

import (
	"context"
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
)

// DedupGuard stops a plan from producing a second open order.
type DedupGuard struct {
	orders repository.WorkOrderRepo
}

func NewDedupGuard(orders repository.WorkOrderRepo) *DedupGuard {
	return &DedupGuard{orders: orders}
}

// FindOpenOrder returns the Pending or In Progress preventive order on the
// plan's asset that belongs to the plan, or nil when there is none.
func (g *DedupGuard) FindOpenOrder(ctx context.Context, plan *domain.MaintenancePlan) (*domain.WorkOrder, error) {
	open, err := g.orders.ListOpenPreventive(ctx, plan.AssetID)
	if err != nil {
		return nil, fmt.Errorf("listing open orders for plan %s: %w", plan.Code, err)
	}
	for _, o := range open {
		if domain.OrderMatchesPlan(o, plan) {
			return o, nil
		}
	}
	return nil, nil
}

func (g *DedupGuard) HasOpenOrder(ctx context.Context, plan *domain.MaintenancePlan) (bool, error) {
	o, err := g.FindOpenOrder(ctx, plan)
	return o != nil, err
}
