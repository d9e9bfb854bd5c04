package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
	"go.uber.org/zap"
)

type completionService struct {
	uow      db.UnitOfWork
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewCompletionService(uow db.UnitOfWork, logger *zap.Logger, observers ...UseCaseObserver) CompletionService {
	return &completionService{
		uow:      uow,
		logger:   loggerOrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *completionService) OnOrderCompleted(ctx context.Context, order *domain.WorkOrder, at time.Time) (plan *domain.MaintenancePlan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"order_number": order.Number}
	defer func() {
		if plan != nil {
			fields["plan_code"] = plan.Code
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "completion.advance",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := advanceForCompletion(ctx, repository.NewSQLitePlanRepo(tx), order, at, s.logger)
		plan = p
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// advanceForCompletion moves the schedule of the plan a completed preventive
// order belongs to, using the completion instant as the reference. Orders
// that are not preventive, or have no asset, are ignored.
func advanceForCompletion(ctx context.Context, plans repository.PlanRepo, order *domain.WorkOrder, at time.Time, logger *zap.Logger) (*domain.MaintenancePlan, error) {
	if !order.IsPreventive() || order.AssetID == nil {
		return nil, nil
	}

	plan, err := correlatePlan(ctx, plans, order, at)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		logger.Debug("completed order matches no plan", zap.String("order_number", order.Number))
		return nil, nil
	}

	adv := scheduler.Advance(plan.Recurrence, at)
	if adv.Fallback {
		logger.Warn("recurrence fallback applied",
			zap.String("plan_code", plan.Code),
			zap.String("reason", adv.Reason))
	}
	if err := plan.ApplyOccurrence(at, adv.Next); err != nil {
		return nil, err
	}
	if err := plans.UpdateSchedule(ctx, plan); err != nil {
		return nil, fmt.Errorf("advancing plan %s: %w", plan.Code, err)
	}
	logger.Info("plan advanced on completion",
		zap.String("order_number", order.Number),
		zap.String("plan_code", plan.Code),
		zap.Time("next_occurrence", adv.Next))
	return plan, nil
}

// correlatePlan finds the plan for a completed order:
// 1. The order's plan_id
// 2. A plan on the asset whose marker appears in the description
// 3. The active plan on the asset whose next occurrence is closest to ref,
// ties and missing occurrences resolved by lowest id
//
// ref is the completion instant, the same reference the schedule advances
// from. A back-dated completion is matched against that date, not the clock.
func correlatePlan(ctx context.Context, plans repository.PlanRepo, order *domain.WorkOrder, ref time.Time) (*domain.MaintenancePlan, error) {
	if order.PlanID != nil {
		p, err := plans.GetByID(ctx, *order.PlanID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading plan %d: %w", *order.PlanID, err)
		}
	}

	onAsset, err := plans.List(ctx, repository.PlanFilter{AssetID: order.AssetID})
	if err != nil {
		return nil, fmt.Errorf("listing plans for asset %d: %w", *order.AssetID, err)
	}

	for _, p := range onAsset {
		if domain.ContainsPlanMarker(order.Description, p.Code) {
			return p, nil
		}
	}

	var best *domain.MaintenancePlan
	var bestDiff time.Duration
	for _, p := range onAsset {
		if p.Status != domain.PlanActive {
			continue
		}
		if p.NextOccurrence == nil {
			if best == nil {
				best = p
			}
			continue
		}
		diff := absDuration(p.NextOccurrence.Sub(ref))
		if best == nil || best.NextOccurrence == nil || diff < bestDiff {
			best, bestDiff = p, diff
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
