package service

import (
	"context"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"go.uber.org/zap"
)

type workOrderService struct {
	orders   repository.WorkOrderRepo
	uow      db.UnitOfWork
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewWorkOrderService(orders repository.WorkOrderRepo, uow db.UnitOfWork, logger *zap.Logger, observers ...UseCaseObserver) WorkOrderService {
	return &workOrderService{
		orders:   orders,
		uow:      uow,
		logger:   loggerOrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// ChangeStatus moves an order to a new status. Completing a preventive order
// advances its plan inside the same transaction, so either both writes land
// or neither does.
func (s *workOrderService) ChangeStatus(ctx context.Context, req app.ChangeStatusRequest) (result *app.ChangeStatusResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"order_number": req.Number,
		"status":       string(req.Status),
	}
	defer func() {
		if result != nil {
			fields["completed"] = result.Completed
			fields["plan_advanced"] = result.AdvancedPlan != nil
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "order.change_status",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	at := time.Now().UTC()
	if req.At != nil {
		at = *req.At
	}

	res := &app.ChangeStatusResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		orders := repository.NewSQLiteWorkOrderRepo(tx)

		order, err := orders.GetByNumber(ctx, req.Number)
		if err != nil {
			return fmt.Errorf("loading order %s: %w", req.Number, err)
		}
		res.Order = order
		if order.Status == req.Status {
			return nil
		}

		completed, err := order.TransitionTo(req.Status, at)
		if err != nil {
			return err
		}
		if err := orders.UpdateStatus(ctx, order); err != nil {
			return fmt.Errorf("updating order %s: %w", order.Number, err)
		}
		res.Completed = completed
		if !completed {
			return nil
		}

		plan, err := advanceForCompletion(ctx, repository.NewSQLitePlanRepo(tx), order, at, s.logger)
		if err != nil {
			return err
		}
		res.AdvancedPlan = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *workOrderService) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	return s.orders.GetByNumber(ctx, number)
}

func (s *workOrderService) List(ctx context.Context, f repository.WorkOrderFilter) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx, f)
}
