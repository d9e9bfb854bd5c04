package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/importer"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/scheduler"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	clock    func() time.Time
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*app.ImportResult, error) {
	seed, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.Import(ctx, seed)
}

// Import writes the seed in one transaction: assets, then technicians, then
// plans. Any failure leaves the store untouched.
func (s *importService) Import(ctx context.Context, seed *importer.Seed) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if result != nil {
			fields["assets"] = result.Assets
			fields["technicians"] = result.Technicians
			fields["plans"] = result.Plans
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "seed.import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateSeed(seed); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	now := s.clock()
	converted, err := importer.Convert(seed, now)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}

	result = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		assets := repository.NewSQLiteAssetRepo(tx)
		technicians := repository.NewSQLiteTechnicianRepo(tx)
		plans := repository.NewSQLitePlanRepo(tx)

		reserved := make(map[string]bool)
		for _, draft := range converted.Plans {
			if draft.Plan.Code != "" {
				reserved[draft.Plan.Code] = true
			}
		}

		assetIDs := make(map[string]int64, len(converted.Assets))
		for _, a := range converted.Assets {
			if err := assets.Create(ctx, a); err != nil {
				return fmt.Errorf("creating asset %q: %w", a.Code, err)
			}
			assetIDs[a.Code] = a.ID
			result.Assets++
		}

		for _, t := range converted.Technicians {
			if err := technicians.Create(ctx, t); err != nil {
				return fmt.Errorf("creating technician %q: %w", t.Name, err)
			}
			result.Technicians++
		}

		for _, draft := range converted.Plans {
			plan := draft.Plan
			if err := s.resolvePlanAsset(ctx, assets, assetIDs, draft); err != nil {
				return err
			}
			if err := assignPlanCode(ctx, plans, plan, reserved, now); err != nil {
				return err
			}
			if plan.NextOccurrence == nil {
				next := scheduler.Advance(plan.Recurrence, now).Next
				plan.NextOccurrence = &next
			}
			if err := plans.Create(ctx, plan); err != nil {
				return fmt.Errorf("creating plan %q: %w", plan.Name, err)
			}
			result.Plans++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolvePlanAsset links the plan to an asset from the same seed or one
// already in the store.
func (s *importService) resolvePlanAsset(ctx context.Context, assets repository.AssetRepo, seeded map[string]int64, draft importer.PlanDraft) error {
	if draft.AssetCode == "" {
		return nil
	}
	if id, ok := seeded[draft.AssetCode]; ok {
		draft.Plan.AssetID = &id
		return nil
	}
	a, err := assets.GetByCode(ctx, draft.AssetCode)
	if err != nil {
		return fmt.Errorf("plan %q: resolving asset %q: %w", draft.Plan.Name, draft.AssetCode, err)
	}
	draft.Plan.AssetID = &a.ID
	return nil
}

// assignPlanCode allocates a code for plans that have none, skipping codes
// claimed explicitly elsewhere in the seed, and rejects explicit codes that
// already exist.
func assignPlanCode(ctx context.Context, plans repository.PlanRepo, plan *domain.MaintenancePlan, reserved map[string]bool, now time.Time) error {
	if plan.Code == "" {
		seq, err := plans.NextCodeSeq(ctx, now.Year())
		if err != nil {
			return err
		}
		for reserved[domain.FormatPlanCode(now.Year(), seq)] {
			seq++
		}
		plan.Code = domain.FormatPlanCode(now.Year(), seq)
		return nil
	}
	_, err := plans.GetByCode(ctx, plan.Code)
	switch {
	case err == nil:
		return fmt.Errorf("plan code %s already exists", plan.Code)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("checking plan code %s: %w", plan.Code, err)
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("seed validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
