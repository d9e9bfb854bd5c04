package domain

import (
	"fmt"
	"strings"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanInactive PlanStatus = "inactive"
	PlanPaused   PlanStatus = "paused"
)

// ParsePlanStatus accepts the canonical lowercase values case-insensitively.
func ParsePlanStatus(s string) (PlanStatus, error) {
	switch PlanStatus(strings.ToLower(strings.TrimSpace(s))) {
	case PlanActive:
		return PlanActive, nil
	case PlanInactive:
		return PlanInactive, nil
	case PlanPaused:
		return PlanPaused, nil
	}
	return "", fmt.Errorf("invalid plan status %q (want active|inactive|paused)", s)
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OpenOrderStatuses are the statuses that count towards workload and dedup.
var OpenOrderStatuses = []OrderStatus{OrderPending, OrderInProgress}

// ParseOrderStatus accepts "pending", "in_progress", "In Progress" and so on.
func ParseOrderStatus(s string) (OrderStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "pending":
		return OrderPending, nil
	case "in progress":
		return OrderInProgress, nil
	case "completed", "done":
		return OrderCompleted, nil
	case "cancelled", "canceled":
		return OrderCancelled, nil
	}
	return "", fmt.Errorf("invalid order status %q (want pending|in_progress|completed|cancelled)", s)
}

const (
	OrderTypePreventive = "Preventive Maintenance"
	OrderTypeCorrective = "Corrective Maintenance"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type TechnicianRole string

const (
	RoleTechnician    TechnicianRole = "technician"
	RoleSupervisor    TechnicianRole = "supervisor"
	RoleAdministrator TechnicianRole = "administrator"
	RoleViewer        TechnicianRole = "viewer"
)

// Eligible reports whether the role can receive generated work orders.
func (r TechnicianRole) Eligible() bool {
	switch r {
	case RoleTechnician, RoleSupervisor, RoleAdministrator:
		return true
	}
	return false
}

func ParseTechnicianRole(s string) (TechnicianRole, error) {
	switch r := TechnicianRole(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleTechnician, RoleSupervisor, RoleAdministrator, RoleViewer:
		return r, nil
	}
	return "", fmt.Errorf("invalid technician role %q", s)
}

// EligibleRoles is the canonical set used by roster queries.
var EligibleRoles = []TechnicianRole{RoleTechnician, RoleSupervisor, RoleAdministrator}

// RunMode selects which due plans a generation run may process.
type RunMode string

const (
	ModeAutomatic RunMode = "automatic"
	ModeManual    RunMode = "manual"
)

func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAutomatic:
		return ModeAutomatic, nil
	case ModeManual:
		return ModeManual, nil
	}
	return "", fmt.Errorf("invalid run mode %q (want automatic|manual)", s)
}
