package domain

import "time"

type Technician struct {
	ID        int64
	Name      string
	Email     string
	Role      TechnicianRole
	Active    bool
	CreatedAt time.Time
}

// TechnicianLoad is a roster entry with its derived workload: the number of
// assigned orders that are Pending or In Progress.
type TechnicianLoad struct {
	Technician Technician
	OpenOrders int
}

type Asset struct {
	ID        int64
	Code      string
	Name      string
	Location  string
	CreatedAt time.Time
}
