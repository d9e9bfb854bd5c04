package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
)

// MaxPreviewCount caps Preview so a typo cannot ask for a million dates.
const MaxPreviewCount = 52

var ErrInvalidPreviewCount = fmt.Errorf("count must be between 1 and %d", MaxPreviewCount)

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) CreatePlan(ctx context.Context, req app.CreatePlanRequest) (plan *domain.MaintenancePlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"asset_code": req.AssetCode}
	defer func() {
		if plan != nil {
			fields["plan_code"] = plan.Code
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan.create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if req.Recurrence == nil {
		return nil, domain.ErrNoRecurrence
	}
	if req.EstimatedDurationMin < 0 {
		return nil, fmt.Errorf("estimated duration must not be negative")
	}
	status := req.Status
	if status == "" {
		status = domain.PlanActive
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	next := scheduler.NextOccurrence(req.Recurrence, now)
	if req.FirstOccurrence != nil {
		next = *req.FirstOccurrence
	}

	plan = &domain.MaintenancePlan{
		Name:                 strings.TrimSpace(req.Name),
		Status:               status,
		AutomaticGeneration:  req.AutomaticGeneration,
		Recurrence:           domain.FieldsFor(req.Recurrence),
		NextOccurrence:       &next,
		EstimatedDurationMin: req.EstimatedDurationMin,
		Instructions:         req.Instructions,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		plans := repository.NewSQLitePlanRepo(tx)

		if code := strings.ToUpper(strings.TrimSpace(req.AssetCode)); code != "" {
			asset, err := repository.NewSQLiteAssetRepo(tx).GetByCode(ctx, code)
			if err != nil {
				return fmt.Errorf("resolving asset %q: %w", code, err)
			}
			plan.AssetID = &asset.ID
		}

		seq, err := plans.NextCodeSeq(ctx, now.Year())
		if err != nil {
			return err
		}
		plan.Code = domain.FormatPlanCode(now.Year(), seq)

		return plans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByCode(ctx context.Context, code string) (*domain.MaintenancePlan, error) {
	return s.plans.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *planService) List(ctx context.Context, f repository.PlanFilter) ([]*domain.MaintenancePlan, error) {
	return s.plans.List(ctx, f)
}

// Preview lists the next count occurrences of a plan. A zero from starts at
// the plan's stored next occurrence, which is included; otherwise the chain
// starts strictly after from.
func (s *planService) Preview(ctx context.Context, code string, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 || count > MaxPreviewCount {
		return nil, ErrInvalidPreviewCount
	}

	plan, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	rec, err := domain.ParseRecurrence(plan.Recurrence)
	if err != nil {
		if errors.Is(err, domain.ErrNoRecurrence) {
			return nil, fmt.Errorf("plan %s: %w", plan.Code, err)
		}
		return nil, fmt.Errorf("plan %s has an invalid recurrence: %w", plan.Code, err)
	}

	if from.IsZero() && plan.NextOccurrence != nil {
		first := *plan.NextOccurrence
		return append([]time.Time{first}, scheduler.Occurrences(rec, first, count-1)...), nil
	}
	if from.IsZero() {
		from = time.Now().UTC()
	}
	return scheduler.Occurrences(rec, from, count), nil
}
