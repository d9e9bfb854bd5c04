package scheduler

import (
	"testing"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestNextOccurrence_Daily_KeepsTimeOfDay(t *testing.T) {
	ref := at(2025, time.June, 15, 10, 30)
	assert.Equal(t, at(2025, time.June, 16, 10, 30), NextOccurrence(domain.Daily{}, ref))
}

func TestNextOccurrence_Legacy_AddsDays(t *testing.T) {
	ref := at(2025, time.June, 15, 8, 0)
	got := NextOccurrence(domain.LegacyLabel{Label: "Quarterly", Days: 90}, ref)
	assert.Equal(t, at(2025, time.September, 13, 8, 0), got)
}

func TestNextOccurrence_Weekly(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.Weekly
		ref  time.Time
		want time.Time
	}{
		{
			name: "sunday to wednesday is three days at midnight",
			rec:  domain.Weekly{Weekdays: []time.Weekday{time.Wednesday}, IntervalWeeks: 1},
			ref:  at(2025, time.June, 15, 10, 30),
			want: date(2025, time.June, 18),
		},
		{
			name: "same weekday rolls a full week",
			rec:  domain.Weekly{Weekdays: []time.Weekday{time.Wednesday}, IntervalWeeks: 1},
			ref:  at(2025, time.June, 18, 7, 0),
			want: date(2025, time.June, 25),
		},
		{
			name: "later target in the same week ignores interval",
			rec:  domain.Weekly{Weekdays: []time.Weekday{time.Monday, time.Thursday}, IntervalWeeks: 2},
			ref:  at(2025, time.June, 17, 9, 0),
			want: date(2025, time.June, 19),
		},
		{
			name: "wrap with interval skips extra weeks",
			rec:  domain.Weekly{Weekdays: []time.Weekday{time.Monday, time.Thursday}, IntervalWeeks: 2},
			ref:  at(2025, time.June, 20, 9, 0),
			want: date(2025, time.June, 30),
		},
		{
			name: "sunday target from saturday",
			rec:  domain.Weekly{Weekdays: []time.Weekday{time.Sunday}, IntervalWeeks: 1},
			ref:  at(2025, time.June, 21, 23, 59),
			want: date(2025, time.June, 22),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(tt.rec, tt.ref))
		})
	}
}

func TestNextOccurrence_Weekly_NoWeekdaysAddsWholeWeeks(t *testing.T) {
	ref := at(2025, time.June, 15, 10, 30)
	got := NextOccurrence(domain.Weekly{IntervalWeeks: 2}, ref)
	assert.Equal(t, at(2025, time.June, 29, 10, 30), got)
}

func TestNextOccurrence_MonthlyByDay(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.MonthlyByDay
		ref  time.Time
		want time.Time
	}{
		{"day 31 clamps in june", domain.MonthlyByDay{Day: 31, IntervalMonths: 1}, at(2025, time.June, 15, 12, 0), date(2025, time.June, 30)},
		{"day reached rolls to next month and clamps", domain.MonthlyByDay{Day: 31, IntervalMonths: 1}, at(2025, time.January, 31, 6, 0), date(2025, time.February, 28)},
		{"leap february", domain.MonthlyByDay{Day: 29, IntervalMonths: 1}, at(2024, time.January, 29, 0, 0), date(2024, time.February, 29)},
		{"past day uses interval", domain.MonthlyByDay{Day: 10, IntervalMonths: 3}, at(2025, time.June, 15, 0, 0), date(2025, time.September, 10)},
		{"year rollover", domain.MonthlyByDay{Day: 5, IntervalMonths: 1}, at(2025, time.December, 20, 0, 0), date(2026, time.January, 5)},
		{"later this month", domain.MonthlyByDay{Day: 20, IntervalMonths: 6}, at(2025, time.June, 15, 0, 0), date(2025, time.June, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(tt.rec, tt.ref))
		})
	}
}

func TestNextOccurrence_MonthlyByWeekday(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.MonthlyByWeekday
		ref  time.Time
		want time.Time
	}{
		{
			name: "first saturday already passed rolls to july",
			rec:  domain.MonthlyByWeekday{Ordinal: 1, Weekday: time.Saturday, IntervalMonths: 1},
			ref:  at(2025, time.June, 15, 10, 0),
			want: date(2025, time.July, 5),
		},
		{
			name: "second tuesday later this month",
			rec:  domain.MonthlyByWeekday{Ordinal: 2, Weekday: time.Tuesday, IntervalMonths: 1},
			ref:  at(2025, time.June, 1, 10, 0),
			want: date(2025, time.June, 10),
		},
		{
			name: "same day does not count",
			rec:  domain.MonthlyByWeekday{Ordinal: 2, Weekday: time.Tuesday, IntervalMonths: 1},
			ref:  at(2025, time.June, 10, 15, 0),
			want: date(2025, time.July, 8),
		},
		{
			name: "interval months",
			rec:  domain.MonthlyByWeekday{Ordinal: 4, Weekday: time.Friday, IntervalMonths: 2},
			ref:  at(2025, time.June, 30, 0, 0),
			want: date(2025, time.August, 22),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOccurrence(tt.rec, tt.ref))
		})
	}
}

func TestNextOccurrence_MonthlyByWeekday_SpillFallsBackOneWeek(t *testing.T) {
	// Fifth Saturday never fits February 2025; the fourth one is used.
	rec := domain.MonthlyByWeekday{Ordinal: 5, Weekday: time.Saturday, IntervalMonths: 1}
	got := NextOccurrence(rec, at(2025, time.January, 20, 0, 0))
	assert.Equal(t, date(2025, time.February, 22), got)
}

func TestNthWeekday(t *testing.T) {
	d, ok := nthWeekday(2025, time.February, 1, time.Saturday, time.UTC)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.February, 1), d)

	_, ok = nthWeekday(2025, time.February, 5, time.Saturday, time.UTC)
	assert.False(t, ok)
}

func TestNextOccurrence_ZeroReferenceMeansNow(t *testing.T) {
	before := time.Now().UTC()
	got := NextOccurrence(domain.Daily{}, time.Time{})
	assert.True(t, got.After(before))
	assert.WithinDuration(t, before.AddDate(0, 0, 1), got, time.Minute)
}

func TestNextOccurrence_NilRecurrenceAdvancesAWeek(t *testing.T) {
	ref := at(2025, time.June, 15, 10, 30)
	assert.Equal(t, ref.AddDate(0, 0, 7), NextOccurrence(nil, ref))
}

func TestAdvance_ParsedFields(t *testing.T) {
	day := 31
	ref := at(2025, time.June, 15, 10, 30)
	adv := Advance(domain.RecurrenceFields{Kind: "monthly", DayOfMonth: &day}, ref)

	assert.False(t, adv.Fallback)
	assert.Equal(t, domain.KindMonthlyByDay, adv.Recurrence.Kind())
	assert.Equal(t, date(2025, time.June, 30), adv.Next)
}

func TestAdvance_Fallback(t *testing.T) {
	ref := at(2025, time.June, 15, 10, 30)

	t.Run("daily-looking fields advance one day", func(t *testing.T) {
		adv := Advance(domain.RecurrenceFields{Kind: "weekly", Weekdays: []string{"Funday"}, Frequency: "Daily"}, ref)
		assert.True(t, adv.Fallback)
		assert.NotEmpty(t, adv.Reason)
		assert.Equal(t, ref.AddDate(0, 0, 1), adv.Next)
	})

	t.Run("anything else advances seven days", func(t *testing.T) {
		adv := Advance(domain.RecurrenceFields{}, ref)
		assert.True(t, adv.Fallback)
		assert.Equal(t, ref.AddDate(0, 0, 7), adv.Next)
	})

	t.Run("unknown kind", func(t *testing.T) {
		adv := Advance(domain.RecurrenceFields{Kind: "fortnightly"}, ref)
		assert.True(t, adv.Fallback)
		assert.Contains(t, adv.Reason, "fortnightly")
	})
}

func TestOccurrences_Chain(t *testing.T) {
	rec := domain.Weekly{Weekdays: []time.Weekday{time.Monday, time.Thursday}, IntervalWeeks: 1}
	got := Occurrences(rec, at(2025, time.June, 15, 10, 0), 4)
	assert.Equal(t, []time.Time{
		date(2025, time.June, 16),
		date(2025, time.June, 19),
		date(2025, time.June, 23),
		date(2025, time.June, 26),
	}, got)
}
