package app

import (
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// Trigger names the caller of a generation run, for logs only.
type Trigger string

const (
	TriggerCLI  Trigger = "cli"
	TriggerAPI  Trigger = "api"
	TriggerCron Trigger = "cron"
)

type RunRequest struct {
	Mode    domain.RunMode
	Now     *time.Time
	Trigger Trigger
}

func NewRunRequest(mode domain.RunMode, trigger Trigger) RunRequest {
	return RunRequest{Mode: mode, Trigger: trigger}
}

// RunDetail describes one order created by a run.
type RunDetail struct {
	OrderNumber    string    `json:"order_number"`
	PlanCode       string    `json:"plan_code"`
	AssetName      string    `json:"asset_name"`
	Description    string    `json:"description"`
	TechnicianName string    `json:"technician_name,omitempty"`
	NextOccurrence time.Time `json:"next_occurrence"`
	Fallback       bool      `json:"fallback,omitempty"`
}

// RunError is a per-plan failure. The plan's writes were rolled back; the
// rest of the run was not affected.
type RunError struct {
	PlanID   int64  `json:"plan_id"`
	PlanCode string `json:"plan_code,omitempty"`
	Message  string `json:"message"`
}

// RunResult reports a generation run. Success is false only when nothing was
// applied: the commit failed or another run held the lock.
type RunResult struct {
	RunID         string         `json:"run_id"`
	Mode          domain.RunMode `json:"mode"`
	Now           time.Time      `json:"now"`
	Success       bool           `json:"success"`
	PlansScanned  int            `json:"plans_scanned"`
	OrdersCreated int            `json:"orders_created"`
	Skipped       int            `json:"skipped"`
	Details       []RunDetail    `json:"details"`
	Errors        []RunError     `json:"errors"`
	Error         string         `json:"error,omitempty"`
}

type GenerationErrorCode string

const (
	GenerationErrInvalidMode GenerationErrorCode = "INVALID_MODE"
	GenerationErrInternal    GenerationErrorCode = "INTERNAL_ERROR"
)

// GenerationError rejects a run request before any plan is scanned.
type GenerationError struct {
	Code    GenerationErrorCode
	Message string
}

func (e *GenerationError) Error() string {
	return string(e.Code) + ": " + e.Message
}
