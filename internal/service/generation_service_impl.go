package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/lock"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRunInProgress is the RunResult error when another run holds the lock.
const ErrRunInProgress = "generation run already in progress"

const DefaultLockKey = "gmao:generation"

type GenerationConfig struct {
	LockKey string
	LockTTL time.Duration
}

type generationService struct {
	uow      db.UnitOfWork
	locker   lock.Locker
	cfg      GenerationConfig
	logger   *zap.Logger
	observer UseCaseObserver
}

// NewGenerationService builds the order generation pipeline. A nil locker
// falls back to an in-process lock.
func NewGenerationService(
	uow db.UnitOfWork,
	locker lock.Locker,
	cfg GenerationConfig,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) GenerationService {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if cfg.LockKey == "" {
		cfg.LockKey = DefaultLockKey
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = lock.DefaultTTL
	}
	return &generationService{
		uow:      uow,
		locker:   locker,
		cfg:      cfg,
		logger:   loggerOrNop(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *generationService) Run(ctx context.Context, req app.RunRequest) (result *app.RunResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"mode":    string(req.Mode),
		"trigger": string(req.Trigger),
	}
	defer func() {
		success := err == nil && result != nil && result.Success
		if result != nil {
			fields["run_id"] = result.RunID
			fields["plans_scanned"] = result.PlansScanned
			fields["orders_created"] = result.OrdersCreated
			fields["skipped"] = result.Skipped
			fields["plan_errors"] = len(result.Errors)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generation.run",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   success,
			Err:       err,
			Fields:    fields,
		})
	}()

	mode, perr := domain.ParseRunMode(string(req.Mode))
	if perr != nil {
		return nil, &app.GenerationError{Code: app.GenerationErrInvalidMode, Message: perr.Error()}
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	result = &app.RunResult{
		RunID:   uuid.NewString(),
		Mode:    mode,
		Now:     now,
		Details: []app.RunDetail{},
		Errors:  []app.RunError{},
	}
	log := s.logger.With(
		zap.String("run_id", result.RunID),
		zap.String("mode", string(mode)),
		zap.String("trigger", string(req.Trigger)),
	)

	// The run may not outlive its lease: the deadline is taken before the
	// lease exists, so it never falls after the lease expires.
	runCtx, cancel := context.WithDeadline(ctx, time.Now().Add(s.cfg.LockTTL))
	defer cancel()

	lease, lerr := s.locker.Acquire(ctx, s.cfg.LockKey, s.cfg.LockTTL)
	if lerr != nil {
		if errors.Is(lerr, lock.ErrHeld) {
			result.Error = ErrRunInProgress
		} else {
			result.Error = lerr.Error()
		}
		log.Warn("generation run not started", zap.Error(lerr))
		return result, nil
	}
	defer func() {
		if rerr := lease.Release(context.WithoutCancel(ctx)); rerr != nil {
			log.Warn("releasing generation lock", zap.Error(rerr))
		}
	}()

	txErr := s.uow.WithinTx(runCtx, func(ctx context.Context, tx db.DBTX) error {
		return newGenerationRun(tx, now, result, log).execute(ctx, mode)
	})
	if txErr != nil {
		// Nothing was applied: drop what the rolled-back transaction created.
		result.OrdersCreated = 0
		result.Details = []app.RunDetail{}
		result.Error = txErr.Error()
		if errors.Is(txErr, context.DeadlineExceeded) && ctx.Err() == nil {
			result.Error = fmt.Sprintf("generation run exceeded the lock ttl (%s)", s.cfg.LockTTL)
		}
		log.Error("generation run rolled back",
			zap.Bool("commit_failed", errors.Is(txErr, db.ErrCommit)),
			zap.Error(txErr))
		return result, nil
	}

	result.Success = true
	log.Info("generation run finished",
		zap.Int("plans_scanned", result.PlansScanned),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("skipped", result.Skipped),
		zap.Int("plan_errors", len(result.Errors)),
	)
	return result, nil
}

// generationRun holds the tx-scoped collaborators of one run.
type generationRun struct {
	tx       db.DBTX
	scanner  *DueScanner
	dedup    *DedupGuard
	balancer *LoadBalancer
	plans    repository.PlanRepo
	orders   repository.WorkOrderRepo
	assets   repository.AssetRepo
	now      time.Time
	result   *app.RunResult
	log      *zap.Logger
}

func newGenerationRun(tx db.DBTX, now time.Time, result *app.RunResult, log *zap.Logger) *generationRun {
	plans := repository.NewSQLitePlanRepo(tx)
	orders := repository.NewSQLiteWorkOrderRepo(tx)
	return &generationRun{
		tx:       tx,
		scanner:  NewDueScanner(plans),
		dedup:    NewDedupGuard(orders),
		balancer: NewLoadBalancer(repository.NewSQLiteTechnicianRepo(tx)),
		plans:    plans,
		orders:   orders,
		assets:   repository.NewSQLiteAssetRepo(tx),
		now:      now,
		result:   result,
		log:      log,
	}
}

func (r *generationRun) execute(ctx context.Context, mode domain.RunMode) error {
	due, err := r.scanner.Scan(ctx, mode, r.now)
	if err != nil {
		return err
	}
	r.result.PlansScanned = len(due)

	for _, plan := range due {
		if err := ctx.Err(); err != nil {
			return err
		}

		var detail *app.RunDetail
		err := db.WithinSavepoint(ctx, r.tx, fmt.Sprintf("plan_%d", plan.ID), func(ctx context.Context) error {
			d, err := r.processPlan(ctx, plan)
			detail = d
			return err
		})

		planLog := r.log.With(zap.Int64("plan_id", plan.ID), zap.String("plan_code", plan.Code))
		switch {
		case err != nil:
			r.result.Errors = append(r.result.Errors, app.RunError{
				PlanID:   plan.ID,
				PlanCode: plan.Code,
				Message:  err.Error(),
			})
			planLog.Warn("plan failed", zap.Error(err))
		case detail == nil:
			r.result.Skipped++
			planLog.Debug("plan skipped: open order exists")
		default:
			r.result.OrdersCreated++
			r.result.Details = append(r.result.Details, *detail)
			planLog.Info("order created",
				zap.String("order_number", detail.OrderNumber),
				zap.String("technician", detail.TechnicianName),
				zap.Time("next_occurrence", detail.NextOccurrence),
				zap.Bool("fallback", detail.Fallback),
			)
		}
	}
	return nil
}

// processPlan creates the order for one due plan and advances its schedule.
// It returns a nil detail when the plan already has an open order; the
// schedule is left alone in that case.
func (r *generationRun) processPlan(ctx context.Context, plan *domain.MaintenancePlan) (*app.RunDetail, error) {
	open, err := r.dedup.FindOpenOrder(ctx, plan)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, nil
	}

	assetName, err := r.assetName(ctx, plan.AssetID)
	if err != nil {
		return nil, err
	}

	tech, err := r.balancer.Pick(ctx)
	if err != nil {
		return nil, err
	}
	var techID *int64
	var techName string
	if tech != nil {
		id := tech.ID
		techID = &id
		techName = tech.Name
	}

	number, err := r.orders.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	order := domain.NewPreventiveOrder(plan, number, techID, r.now)
	if err := r.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	adv := scheduler.Advance(plan.Recurrence, r.now)
	if adv.Fallback {
		r.log.Warn("recurrence fallback applied",
			zap.String("plan_code", plan.Code),
			zap.String("reason", adv.Reason),
			zap.Time("next_occurrence", adv.Next),
		)
	}
	if err := plan.ApplyOccurrence(r.now, adv.Next); err != nil {
		return nil, err
	}
	if err := r.plans.UpdateSchedule(ctx, plan); err != nil {
		return nil, err
	}

	return &app.RunDetail{
		OrderNumber:    order.Number,
		PlanCode:       plan.Code,
		AssetName:      assetName,
		Description:    order.Description,
		TechnicianName: techName,
		NextOccurrence: adv.Next,
		Fallback:       adv.Fallback,
	}, nil
}

func (r *generationRun) assetName(ctx context.Context, id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	a, err := r.assets.GetByID(ctx, *id)
	if err != nil {
		return "", fmt.Errorf("loading asset %d: %w", *id, err)
	}
	return a.Name, nil
}
