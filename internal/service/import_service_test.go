package service

import (
	"context"
	"testing"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/importer"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImportService(env *testEnv) *importService {
	svc := NewImportService(env.uow).(*importService)
	svc.clock = func() time.Time { return testutil.FixedNow }
	return svc
}

func TestImportFile_Seed(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()

	res, err := newTestImportService(env).ImportFile(ctx, "../importer/testdata/seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Assets)
	assert.Equal(t, 3, res.Technicians)
	assert.Equal(t, 3, res.Plans)

	compressor, err := env.assets.GetByCode(ctx, "CMP-01")
	require.NoError(t, err)

	belt, err := env.plans.GetByCode(ctx, "PM-2025-0001")
	require.NoError(t, err)
	require.NotNil(t, belt.AssetID)
	assert.Equal(t, compressor.ID, *belt.AssetID)
	assertTimePtr(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), belt.NextOccurrence)

	boiler, err := env.plans.GetByCode(ctx, "PM-2025-0002")
	require.NoError(t, err)
	assert.Equal(t, "Boiler inspection", boiler.Name)
	assert.Equal(t, domain.PlanPaused, boiler.Status)
	// First Saturday after 15 June.
	assertTimePtr(t, time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC), boiler.NextOccurrence)

	legacy, err := env.plans.GetByCode(ctx, "PM-2025-0003")
	require.NoError(t, err)
	assert.Nil(t, legacy.AssetID)
	assertTimePtr(t, testutil.FixedNow.AddDate(0, 0, 90), legacy.NextOccurrence)

	all, err := env.technicians.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	active, err := env.technicians.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestImport_AllocationSkipsCodesClaimedLaterInSeed(t *testing.T) {
	env := setupRepos(t)
	seed := &importer.Seed{Plans: []importer.PlanImport{
		{Name: "Allocated", Recurrence: importer.RecurrenceImport{Kind: "daily"}},
		{Name: "Explicit", Code: "PM-2025-0001", Recurrence: importer.RecurrenceImport{Kind: "daily"}},
	}}

	_, err := newTestImportService(env).Import(context.Background(), seed)
	require.NoError(t, err)

	allocated, err := env.plans.List(context.Background(), repository.PlanFilter{})
	require.NoError(t, err)
	require.Len(t, allocated, 2)
	assert.Equal(t, "PM-2025-0002", allocated[0].Code)
	assert.Equal(t, "PM-2025-0001", allocated[1].Code)
}

func TestImport_ResolvesExistingAsset(t *testing.T) {
	env := setupRepos(t)
	existing := env.addAsset(t, "Existing")
	seed := &importer.Seed{Plans: []importer.PlanImport{
		{Name: "Check", Asset: existing.Code, Recurrence: importer.RecurrenceImport{Kind: "daily"}},
	}}

	_, err := newTestImportService(env).Import(context.Background(), seed)
	require.NoError(t, err)

	plans, err := env.plans.List(context.Background(), repository.PlanFilter{AssetID: &existing.ID})
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestImport_RollsBackOnFailure(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	seed := &importer.Seed{
		Assets:      []importer.AssetImport{{Code: "A-1", Name: "Pump"}},
		Technicians: []importer.TechnicianImport{{Name: "Ana"}},
		Plans: []importer.PlanImport{
			{Name: "Fine", Asset: "A-1", Recurrence: importer.RecurrenceImport{Kind: "daily"}},
			{Name: "Dangling", Asset: "MISSING", Recurrence: importer.RecurrenceImport{Kind: "daily"}},
		},
	}

	_, err := newTestImportService(env).Import(ctx, seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")

	assets, err := env.assets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, assets)
	techs, err := env.technicians.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, techs)
	plans, err := env.plans.List(ctx, repository.PlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestImport_RejectsExistingPlanCode(t *testing.T) {
	env := setupRepos(t)
	env.addPlan(t, "Taken", testutil.WithCode("PM-2025-0009"))
	seed := &importer.Seed{Plans: []importer.PlanImport{
		{Name: "Clash", Code: "PM-2025-0009", Recurrence: importer.RecurrenceImport{Kind: "daily"}},
	}}

	_, err := newTestImportService(env).Import(context.Background(), seed)
	assert.ErrorContains(t, err, "already exists")
}

func TestImport_ValidationErrorsAreListed(t *testing.T) {
	env := setupRepos(t)
	seed := &importer.Seed{
		Assets: []importer.AssetImport{{Name: "No code"}},
		Plans:  []importer.PlanImport{{Name: "", Recurrence: importer.RecurrenceImport{Kind: "weekly", Weekdays: []string{"Funday"}}}},
	}

	_, err := newTestImportService(env).Import(context.Background(), seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed validation failed (3 errors)")
	assert.Contains(t, err.Error(), "assets[0].code is required")
	assert.Contains(t, err.Error(), "plans[0].name is required")
}
