package importer

import (
	"testing"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

func ptrStr(s string) *string { return &s }

func TestLoadSeed_YAML(t *testing.T) {
	seed, err := LoadSeed("testdata/seed.yaml")
	require.NoError(t, err)

	require.Len(t, seed.Assets, 2)
	require.Len(t, seed.Technicians, 3)
	require.Len(t, seed.Plans, 3)
	assert.Equal(t, []string{"monday", "thursday"}, seed.Plans[0].Recurrence.Weekdays)
	assert.Contains(t, seed.Plans[0].Instructions, "Replace if worn.")
	assert.Empty(t, ValidateSeed(seed))
}

func TestParseSeed_JSON(t *testing.T) {
	seed, err := ParseSeed([]byte(`{"assets":[{"code":"A1","name":"Pump"}],"plans":[{"name":"Daily","recurrence":{"kind":"daily"}}]}`), true)
	require.NoError(t, err)
	assert.Len(t, seed.Assets, 1)
	assert.Equal(t, "daily", seed.Plans[0].Recurrence.Kind)
}

func TestParseSeed_Malformed(t *testing.T) {
	_, err := ParseSeed([]byte("assets: [unclosed"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing seed file")
}

func TestValidateSeed_CollectsAllErrors(t *testing.T) {
	seed := &Seed{
		Assets: []AssetImport{
			{Code: "A1", Name: "Pump"},
			{Code: "a1", Name: "Duplicate"},
			{Name: "No code"},
		},
		Technicians: []TechnicianImport{
			{Name: "Ana", Role: "janitor"},
		},
		Plans: []PlanImport{
			{Name: "bad code", Code: "PM-25-1", Recurrence: RecurrenceImport{Kind: "daily"}},
			{Name: "bad weekday", Recurrence: RecurrenceImport{Kind: "weekly", Weekdays: []string{"Funday"}}},
			{Name: "", Recurrence: RecurrenceImport{Frequency: "Monthly"}},
			{Name: "bad date", Recurrence: RecurrenceImport{Kind: "daily"}, NextOccurrence: ptrStr("tomorrow")},
			{Name: "bad status", Status: "archived", Recurrence: RecurrenceImport{Kind: "daily"}},
			{Name: "no recurrence"},
		},
	}

	errs := ValidateSeed(seed)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}

	assert.Len(t, errs, 9)
	assert.Contains(t, msgs, `assets[1].code "a1" is duplicated`)
	assert.Contains(t, msgs, "assets[2].code is required")
	assert.Contains(t, msgs, "plans[2].name is required")
}

func TestConvert(t *testing.T) {
	seed, err := LoadSeed("testdata/seed.yaml")
	require.NoError(t, err)

	conv, err := Convert(seed, importNow)
	require.NoError(t, err)

	require.Len(t, conv.Assets, 2)
	assert.Equal(t, "CMP-01", conv.Assets[0].Code)

	require.Len(t, conv.Technicians, 3)
	assert.Equal(t, domain.RoleTechnician, conv.Technicians[0].Role)
	assert.True(t, conv.Technicians[0].Active)
	assert.Equal(t, domain.RoleViewer, conv.Technicians[2].Role)
	assert.False(t, conv.Technicians[2].Active)

	require.Len(t, conv.Plans, 3)

	weekly := conv.Plans[0]
	assert.Equal(t, "CMP-01", weekly.AssetCode)
	assert.Equal(t, "PM-2025-0001", weekly.Plan.Code)
	assert.True(t, weekly.Plan.AutomaticGeneration)
	assert.Equal(t, domain.PlanActive, weekly.Plan.Status)
	assert.Equal(t, "Weekly", weekly.Plan.Recurrence.Frequency, "legacy label is synced")
	require.NotNil(t, weekly.Plan.NextOccurrence)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), *weekly.Plan.NextOccurrence)

	boiler := conv.Plans[1]
	assert.Empty(t, boiler.Plan.Code, "code is allocated at import time")
	assert.Equal(t, domain.PlanPaused, boiler.Plan.Status)
	assert.Equal(t, string(domain.KindMonthlyByWeekday), boiler.Plan.Recurrence.Kind)
	assert.Nil(t, boiler.Plan.NextOccurrence)

	legacy := conv.Plans[2]
	assert.Empty(t, legacy.AssetCode)
	require.NotNil(t, legacy.Plan.Recurrence.FrequencyDays)
	assert.Equal(t, 90, *legacy.Plan.Recurrence.FrequencyDays)
}

func TestParseInstant(t *testing.T) {
	got, err := parseInstant("2025-06-16T08:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, time.June, 16, 6, 0, 0, 0, time.UTC)))

	_, err = parseInstant("16/06/2025")
	assert.Error(t, err)
}

func TestConvert_AppliesSeedDefaults(t *testing.T) {
	seed, err := ParseSeed([]byte(`
defaults:
  role: supervisor
  status: paused
  automatic: true
  estimated_duration_min: 30
technicians:
  - name: Ana
  - name: Luis
    role: viewer
plans:
  - name: Uses defaults
    recurrence: {kind: daily}
  - name: Overrides
    status: active
    automatic: false
    estimated_duration_min: 90
    recurrence: {kind: daily}
`), false)
	require.NoError(t, err)
	require.Empty(t, ValidateSeed(seed))

	conv, err := Convert(seed, importNow)
	require.NoError(t, err)

	assert.Equal(t, domain.RoleSupervisor, conv.Technicians[0].Role)
	assert.Equal(t, domain.RoleViewer, conv.Technicians[1].Role)

	inherited := conv.Plans[0].Plan
	assert.Equal(t, domain.PlanPaused, inherited.Status)
	assert.True(t, inherited.AutomaticGeneration)
	assert.Equal(t, 30, inherited.EstimatedDurationMin)

	explicit := conv.Plans[1].Plan
	assert.Equal(t, domain.PlanActive, explicit.Status)
	assert.False(t, explicit.AutomaticGeneration, "an explicit false is not replaced by the default")
	assert.Equal(t, 90, explicit.EstimatedDurationMin)
}

func TestValidateSeed_RejectsBadDefaults(t *testing.T) {
	minus := -5
	errs := ValidateSeed(&Seed{Defaults: SeedDefaults{Role: "boss", Status: "archived", EstimatedDurationMin: &minus}})
	assert.Len(t, errs, 3)
}
