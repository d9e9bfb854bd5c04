package scheduler

import (
	"testing"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(id int64, role domain.TechnicianRole, active bool, open int) domain.TechnicianLoad {
	return domain.TechnicianLoad{
		Technician: domain.Technician{ID: id, Name: "tech", Role: role, Active: active},
		OpenOrders: open,
	}
}

func TestPickLeastLoaded_FewestOpenOrders(t *testing.T) {
	roster := []domain.TechnicianLoad{
		load(1, domain.RoleTechnician, true, 2),
		load(2, domain.RoleTechnician, true, 0),
		load(3, domain.RoleTechnician, true, 1),
	}
	tech, ok := PickLeastLoaded(roster)
	require.True(t, ok)
	assert.Equal(t, int64(2), tech.ID)
}

func TestPickLeastLoaded_TieBreaksOnID(t *testing.T) {
	roster := []domain.TechnicianLoad{
		load(9, domain.RoleSupervisor, true, 1),
		load(4, domain.RoleAdministrator, true, 1),
		load(7, domain.RoleTechnician, true, 1),
	}
	tech, ok := PickLeastLoaded(roster)
	require.True(t, ok)
	assert.Equal(t, int64(4), tech.ID)
}

func TestPickLeastLoaded_SkipsInactiveAndIneligible(t *testing.T) {
	roster := []domain.TechnicianLoad{
		load(1, domain.RoleViewer, true, 0),
		load(2, domain.RoleTechnician, false, 0),
		load(3, domain.RoleTechnician, true, 5),
	}
	tech, ok := PickLeastLoaded(roster)
	require.True(t, ok)
	assert.Equal(t, int64(3), tech.ID)
}

func TestPickLeastLoaded_EmptyRoster(t *testing.T) {
	_, ok := PickLeastLoaded(nil)
	assert.False(t, ok)

	_, ok = PickLeastLoaded([]domain.TechnicianLoad{load(1, domain.RoleViewer, true, 0)})
	assert.False(t, ok)
}

func TestRankByLoad_Order(t *testing.T) {
	ranked := RankByLoad([]domain.TechnicianLoad{
		load(3, domain.RoleTechnician, true, 1),
		load(1, domain.RoleTechnician, true, 1),
		load(2, domain.RoleTechnician, true, 0),
	})
	ids := make([]int64, len(ranked))
	for i, l := range ranked {
		ids[i] = l.Technician.ID
	}
	assert.Equal(t, []int64{2, 1, 3}, ids)
}
