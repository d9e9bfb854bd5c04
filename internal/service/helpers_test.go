package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/canaleta14-ai/gmao/internal/repository"
	"github.com/canaleta14-ai/gmao/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	assets      repository.AssetRepo
	technicians repository.TechnicianRepo
	plans       repository.PlanRepo
	orders      repository.WorkOrderRepo
}

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		assets:      repository.NewSQLiteAssetRepo(database),
		technicians: repository.NewSQLiteTechnicianRepo(database),
		plans:       repository.NewSQLitePlanRepo(database),
		orders:      repository.NewSQLiteWorkOrderRepo(database),
	}
}

func (e *testEnv) addAsset(t *testing.T, name string) *domain.Asset {
	t.Helper()
	a := testutil.NewTestAsset(name)
	require.NoError(t, e.assets.Create(context.Background(), a))
	return a
}

func (e *testEnv) addTechnician(t *testing.T, name string, opts ...testutil.TechnicianOption) *domain.Technician {
	t.Helper()
	tech := testutil.NewTestTechnician(name, opts...)
	require.NoError(t, e.technicians.Create(context.Background(), tech))
	return tech
}

func (e *testEnv) addPlan(t *testing.T, name string, opts ...testutil.PlanOption) *domain.MaintenancePlan {
	t.Helper()
	p := testutil.NewTestPlan(name, opts...)
	require.NoError(t, e.plans.Create(context.Background(), p))
	return p
}

func (e *testEnv) addOrder(t *testing.T, opts ...testutil.OrderOption) *domain.WorkOrder {
	t.Helper()
	o := testutil.NewTestOrder(opts...)
	require.NoError(t, e.orders.Create(context.Background(), o))
	return o
}

func (e *testEnv) reloadPlan(t *testing.T, id int64) *domain.MaintenancePlan {
	t.Helper()
	p, err := e.plans.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *testEnv) allOrders(t *testing.T) []*domain.WorkOrder {
	t.Helper()
	orders, err := e.orders.List(context.Background(), repository.WorkOrderFilter{})
	require.NoError(t, err)
	return orders
}

func assertTimePtr(t *testing.T, want time.Time, got *time.Time, msgAndArgs ...any) {
	t.Helper()
	if !assert.NotNil(t, got, msgAndArgs...) {
		return
	}
	assert.True(t, want.Equal(*got), "want %s, got %s", want.Format(time.RFC3339), got.Format(time.RFC3339))
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
