package scheduler

import (
	"sort"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// RankByLoad filters the roster down to active technicians with an eligible
// role and sorts them by:
// 1. Open orders: fewest first
// 2. Technician ID: ascending
func RankByLoad(roster []domain.TechnicianLoad) []domain.TechnicianLoad {
	ranked := make([]domain.TechnicianLoad, 0, len(roster))
	for _, l := range roster {
		if l.Technician.Active && l.Technician.Role.Eligible() {
			ranked = append(ranked, l)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.OpenOrders != b.OpenOrders {
			return a.OpenOrders < b.OpenOrders
		}
		return a.Technician.ID < b.Technician.ID
	})
	return ranked
}

// PickLeastLoaded returns the least-loaded eligible technician, or false when
// nobody can take the order.
func PickLeastLoaded(roster []domain.TechnicianLoad) (domain.Technician, bool) {
	ranked := RankByLoad(roster)
	if len(ranked) == 0 {
		return domain.Technician{}, false
	}
	return ranked[0].Technician, true
}
