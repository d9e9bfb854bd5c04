package service

import (
	"context"
	"testing"
	"time"

	"github.com/canaleta14-ai/gmao/internal/app"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRequest(name string, rec domain.Recurrence) app.CreatePlanRequest {
	now := testutil.FixedNow
	return app.CreatePlanRequest{
		Name:                 name,
		Recurrence:           rec,
		AutomaticGeneration:  true,
		EstimatedDurationMin: 30,
		Now:                  &now,
	}
}

func TestCreatePlan_AllocatesSequentialCodes(t *testing.T) {
	env := setupRepos(t)
	svc := NewPlanService(env.plans, env.uow)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, createRequest("Filters", domain.Daily{}))
	require.NoError(t, err)
	second, err := svc.CreatePlan(ctx, createRequest("Belts", domain.Daily{}))
	require.NoError(t, err)

	assert.Equal(t, "PM-2025-0001", first.Code)
	assert.Equal(t, "PM-2025-0002", second.Code)
	assert.NotZero(t, first.ID)
	assert.Equal(t, domain.PlanActive, first.Status)
}

func TestCreatePlan_ComputesFirstOccurrenceAndLegacyFields(t *testing.T) {
	env := setupRepos(t)
	asset := env.addAsset(t, "Boiler")
	svc := NewPlanService(env.plans, env.uow)

	req := createRequest("Burner", domain.Weekly{Weekdays: []time.Weekday{time.Wednesday}, IntervalWeeks: 2})
	req.AssetCode = asset.Code
	plan, err := svc.CreatePlan(context.Background(), req)
	require.NoError(t, err)

	stored := env.reloadPlan(t, plan.ID)
	require.NotNil(t, stored.AssetID)
	assert.Equal(t, asset.ID, *stored.AssetID)
	// Wednesday has passed in the Monday-based week, so the interval applies.
	assertTimePtr(t, time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC), stored.NextOccurrence)
	assert.Nil(t, stored.LastOccurrence)
	assert.Equal(t, "weekly", stored.Recurrence.Kind)
	assert.Equal(t, []string{"wednesday"}, stored.Recurrence.Weekdays)
	assert.Equal(t, "Weekly", stored.Recurrence.Frequency)
	require.NotNil(t, stored.Recurrence.FrequencyDays)
	assert.Equal(t, 14, *stored.Recurrence.FrequencyDays)
}

func TestCreatePlan_FirstOccurrenceOverride(t *testing.T) {
	env := setupRepos(t)
	first := time.Date(2025, time.July, 1, 6, 0, 0, 0, time.UTC)
	req := createRequest("Survey", domain.MonthlyByDay{Day: 1, IntervalMonths: 3})
	req.FirstOccurrence = &first

	plan, err := NewPlanService(env.plans, env.uow).CreatePlan(context.Background(), req)
	require.NoError(t, err)
	assertTimePtr(t, first, env.reloadPlan(t, plan.ID).NextOccurrence)
}

func TestCreatePlan_Rejects(t *testing.T) {
	env := setupRepos(t)
	svc := NewPlanService(env.plans, env.uow)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, createRequest(" ", domain.Daily{}))
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.CreatePlan(ctx, createRequest("No cadence", nil))
	assert.ErrorIs(t, err, domain.ErrNoRecurrence)

	req := createRequest("Orphan", domain.Daily{})
	req.AssetCode = "NOPE"
	_, err = svc.CreatePlan(ctx, req)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	plans, err := env.plans.List(ctx, repository.PlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPreview_StartsAtStoredNextOccurrence(t *testing.T) {
	env := setupRepos(t)
	next := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	plan := env.addPlan(t, "Weekly", testutil.WithWeekly("monday", "thursday"), testutil.WithNextOccurrence(next))

	got, err := NewPlanService(env.plans, env.uow).Preview(context.Background(), plan.Code, time.Time{}, 4)
	require.NoError(t, err)
	require.Len(t, got, 4)
	want := []time.Time{
		next,
		time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 26, 0, 0, 0, 0, time.UTC),
	}
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "occurrence %d: want %s got %s", i, want[i], got[i])
	}
}

func TestPreview_FromInstant(t *testing.T) {
	env := setupRepos(t)
	plan := env.addPlan(t, "Monthly", testutil.WithRecurrence(domain.FieldsFor(domain.MonthlyByDay{Day: 31, IntervalMonths: 1})))

	got, err := NewPlanService(env.plans, env.uow).Preview(context.Background(), plan.Code, testutil.FixedNow, 3)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC),
	}, got)
}

func TestPreview_Errors(t *testing.T) {
	env := setupRepos(t)
	broken := env.addPlan(t, "Broken", testutil.WithRecurrence(domain.RecurrenceFields{Kind: "yearly-ish"}))
	svc := NewPlanService(env.plans, env.uow)
	ctx := context.Background()

	_, err := svc.Preview(ctx, broken.Code, time.Time{}, 0)
	assert.ErrorContains(t, err, "count must be")

	_, err = svc.Preview(ctx, broken.Code, time.Time{}, 3)
	assert.ErrorContains(t, err, "invalid recurrence")

	_, err = svc.Preview(ctx, "PM-2099-0001", time.Time{}, 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
