package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
)

type technicianService struct {
	technicians repository.TechnicianRepo
}

func NewTechnicianService(technicians repository.TechnicianRepo) TechnicianService {
	return &technicianService{technicians: technicians}
}

func (s *technicianService) Create(ctx context.Context, t *domain.Technician) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return fmt.Errorf("technician name is required")
	}
	if t.Role == "" {
		t.Role = domain.RoleTechnician
	}
	if _, err := domain.ParseTechnicianRole(string(t.Role)); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return s.technicians.Create(ctx, t)
}

func (s *technicianService) List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error) {
	return s.technicians.List(ctx, includeInactive)
}

// Roster returns eligible technicians with their open-order counts, in the
// order the balancer would pick them.
func (s *technicianService) Roster(ctx context.Context) ([]domain.TechnicianLoad, error) {
	loads, err := s.technicians.ListEligibleWithLoad(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.RankByLoad(loads), nil
}

type assetService struct {
	assets repository.AssetRepo
}

func NewAssetService(assets repository.AssetRepo) AssetService {
	return &assetService{assets: assets}
}

func (s *assetService) Create(ctx context.Context, a *domain.Asset) error {
	a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
	if a.Code == "" {
		return fmt.Errorf("asset code is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("asset name is required")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return s.assets.Create(ctx, a)
}

func (s *assetService) GetByCode(ctx context.Context, code string) (*domain.Asset, error) {
	return s.assets.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *assetService) List(ctx context.Context) ([]*domain.Asset, error) {
	return s.assets.List(ctx)
}
