package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

var fixtureSeq atomic.Int64

func nextSeq() int64 { return fixtureSeq.Add(1) }

// FixedNow is the reference instant shared by most tests: Sunday 15 June 2025,
// 10:30 UTC.
var FixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func NewTestAsset(name string) *domain.Asset {
	return &domain.Asset{
		Code:      fmt.Sprintf("AS-%04d", nextSeq()),
		Name:      name,
		Location:  "Plant 1",
		CreatedAt: FixedNow,
	}
}

// Technician options
type TechnicianOption func(*domain.Technician)

func WithRole(r domain.TechnicianRole) TechnicianOption {
	return func(t *domain.Technician) {
		t.Role = r
	}
}

func Inactive() TechnicianOption {
	return func(t *domain.Technician) {
		t.Active = false
	}
}

func NewTestTechnician(name string, opts ...TechnicianOption) *domain.Technician {
	t := &domain.Technician{
		Name:      name,
		Email:     fmt.Sprintf("tech%d@example.com", nextSeq()),
		Role:      domain.RoleTechnician,
		Active:    true,
		CreatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Plan options
type PlanOption func(*domain.MaintenancePlan)

func WithAsset(id int64) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.AssetID = &id
	}
}

func WithNextOccurrence(t time.Time) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.NextOccurrence = &t
	}
}

func WithoutNextOccurrence() PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.NextOccurrence = nil
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.Status = s
	}
}

func ManualOnly() PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.AutomaticGeneration = false
	}
}

func WithRecurrence(f domain.RecurrenceFields) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.Recurrence = f
	}
}

// WithWeekly sets a weekly recurrence on the given weekday names.
func WithWeekly(weekdays ...string) PlanOption {
	return func(p *domain.MaintenancePlan) {
		one := 1
		p.Recurrence = domain.RecurrenceFields{
			Kind:          string(domain.KindWeekly),
			Weekdays:      weekdays,
			IntervalWeeks: &one,
			Frequency:     "Weekly",
		}
	}
}

func WithCode(code string) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.Code = code
	}
}

func WithInstructions(s string) PlanOption {
	return func(p *domain.MaintenancePlan) {
		p.Instructions = s
	}
}

// NewTestPlan builds an active, automatic, daily plan that is due at
// FixedNow minus one hour.
func NewTestPlan(name string, opts ...PlanOption) *domain.MaintenancePlan {
	next := FixedNow.Add(-time.Hour)
	p := &domain.MaintenancePlan{
		Code:                 domain.FormatPlanCode(2025, int(nextSeq())),
		Name:                 name,
		Status:               domain.PlanActive,
		AutomaticGeneration:  true,
		Recurrence:           domain.RecurrenceFields{Kind: string(domain.KindDaily)},
		NextOccurrence:       &next,
		EstimatedDurationMin: 60,
		CreatedAt:            FixedNow.AddDate(0, -1, 0),
		UpdatedAt:            FixedNow.AddDate(0, -1, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Work order options
type OrderOption func(*domain.WorkOrder)

func WithOrderStatus(s domain.OrderStatus) OrderOption {
	return func(o *domain.WorkOrder) {
		o.Status = s
	}
}

func AssignedTo(id int64) OrderOption {
	return func(o *domain.WorkOrder) {
		o.TechnicianID = &id
	}
}

func OnAsset(id int64) OrderOption {
	return func(o *domain.WorkOrder) {
		o.AssetID = &id
	}
}

func ForPlan(p *domain.MaintenancePlan) OrderOption {
	return func(o *domain.WorkOrder) {
		id := p.ID
		o.PlanID = &id
		o.AssetID = p.AssetID
		o.Type = domain.OrderTypePreventive
		o.Description = "Preventive maintenance: " + p.Name + " - " + p.CorrelationMarker()
	}
}

func WithDescription(d string) OrderOption {
	return func(o *domain.WorkOrder) {
		o.Description = d
	}
}

func Preventive() OrderOption {
	return func(o *domain.WorkOrder) {
		o.Type = domain.OrderTypePreventive
	}
}

// NewTestOrder builds a pending corrective order with a unique number.
func NewTestOrder(opts ...OrderOption) *domain.WorkOrder {
	o := &domain.WorkOrder{
		Number:        fmt.Sprintf("OT-T%05d", nextSeq()),
		Type:          domain.OrderTypeCorrective,
		Priority:      domain.PriorityMedium,
		Status:        domain.OrderPending,
		Description:   "Test order",
		ScheduledDate: domain.DateOnly(FixedNow),
		CreatedAt:     FixedNow,
		UpdatedAt:     FixedNow,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
