package service

import (
	"context"
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
)

// LoadBalancer assigns generated orders to the least-loaded technician. It
// reads workload through the caller's transaction, so orders created earlier
// in the same run count.
type LoadBalancer struct {
	technicians repository.TechnicianRepo
}

func NewLoadBalancer(technicians repository.TechnicianRepo) *LoadBalancer {
	return &LoadBalancer{technicians: technicians}
}

// Pick returns nil when no active eligible technician exists; the order is
// then created unassigned.
func (b *LoadBalancer) Pick(ctx context.Context) (*domain.Technician, error) {
	roster, err := b.technicians.ListEligibleWithLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading technician workload: %w", err)
	}
	tech, ok := scheduler.PickLeastLoaded(roster)
	if !ok {
		return nil, nil
	}
	return &tech, nil
}
