package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestFormatCodes(t *testing.T) {
	assert.Equal(t, "OT-000042", FormatOrderNumber(42))
	assert.Equal(t, "OT-1234567", FormatOrderNumber(1234567))
	assert.Equal(t, "PM-2025-0007", FormatPlanCode(2025, 7))
	assert.Equal(t, "PM-2025-", PlanCodePrefix(2025))
}

func TestContainsPlanMarker(t *testing.T) {
	cases := []struct {
		text string
		code string
		want bool
	}{
		{"Preventive maintenance: Pump - Plan: PM-2025-0001", "PM-2025-0001", true},
		{"Plan: PM-2025-0001 (legacy)", "PM-2025-0001", true},
		{"Plan: PM-2025-00012", "PM-2025-0001", false},
		{"Plan: PM-2025-00012 and Plan: PM-2025-0001.", "PM-2025-0001", true},
		{"plan: PM-2025-0001", "PM-2025-0001", false},
		{"nothing here", "PM-2025-0001", false},
		{"Plan: ", "", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ContainsPlanMarker(tc.text, tc.code), "text=%q", tc.text)
	}
}

func TestOrderMatchesPlan(t *testing.T) {
	plan := &MaintenancePlan{ID: 7, Code: "PM-2025-0003"}
	other := int64(8)
	same := int64(7)

	assert.True(t, OrderMatchesPlan(&WorkOrder{PlanID: &same}, plan))
	assert.True(t, OrderMatchesPlan(&WorkOrder{Description: "x - Plan: PM-2025-0003"}, plan))
	assert.False(t, OrderMatchesPlan(&WorkOrder{PlanID: &other, Description: "manual"}, plan))
}

func TestNewPreventiveOrder(t *testing.T) {
	asset := int64(3)
	tech := int64(9)
	plan := &MaintenancePlan{
		ID: 5, Code: "PM-2025-0005", Name: "Compressor check",
		AssetID: &asset, EstimatedDurationMin: 90,
		Instructions: "Check oil level.\nReplace filter.",
	}

	o := NewPreventiveOrder(plan, "OT-000010", &tech, testNow)

	assert.Equal(t, "OT-000010", o.Number)
	assert.Equal(t, OrderTypePreventive, o.Type)
	assert.Equal(t, PriorityMedium, o.Priority)
	assert.Equal(t, OrderPending, o.Status)
	assert.True(t, ContainsPlanMarker(o.Description, plan.Code))
	assert.True(t, strings.HasSuffix(o.Observations, plan.Instructions), "instructions embedded verbatim")
	require.NotNil(t, o.PlanID)
	assert.Equal(t, int64(5), *o.PlanID)
	assert.Equal(t, &asset, o.AssetID)
	assert.Equal(t, &tech, o.TechnicianID)
	assert.Equal(t, 90, o.EstimatedDurationMin)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), o.ScheduledDate)
	assert.Equal(t, testNow, o.CreatedAt)
}

func TestTransitionTo(t *testing.T) {
	o := &WorkOrder{Status: OrderPending}

	completed, err := o.TransitionTo(OrderInProgress, testNow)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = o.TransitionTo(OrderCompleted, testNow)
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, testNow, *o.CompletedAt)

	completed, err = o.TransitionTo(OrderCompleted, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, completed, "re-completing is not a transition")
	assert.Equal(t, testNow, *o.CompletedAt)

	completed, err = o.TransitionTo(OrderInProgress, testNow)
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Nil(t, o.CompletedAt, "reopening clears completion")

	_, err = o.TransitionTo(OrderStatus("Lost"), testNow)
	assert.Error(t, err)
}

func TestParseOrderStatus(t *testing.T) {
	for in, want := range map[string]OrderStatus{
		"pending": OrderPending, "in_progress": OrderInProgress, "In Progress": OrderInProgress,
		"completed": OrderCompleted, "canceled": OrderCancelled,
	} {
		got, err := ParseOrderStatus(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseOrderStatus("paused")
	assert.Error(t, err)
}
