package scheduler

import (
	"math/rand"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/canaleta14-ai/gmao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sao Paulo kept DST until 2019 with the change at midnight, so local
// midnight did not exist on those days.
var propertyZones = []string{"UTC", "Europe/Madrid", "America/Sao_Paulo", "America/New_York"}

func loadZones(t *testing.T) []*time.Location {
	t.Helper()
	locs := make([]*time.Location, 0, len(propertyZones))
	for _, name := range propertyZones {
		loc, err := time.LoadLocation(name)
		require.NoError(t, err)
		locs = append(locs, loc)
	}
	return locs
}

// TestNextOccurrence_AlwaysMovesForward property-tests that every recurrence
// variant produces a result strictly after its reference, and that monthly and
// weekly results land on the configured day, in the reference's zone across
// DST changes.
func TestNextOccurrence_AlwaysMovesForward(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	locs := loadZones(t)
	base := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 2000; trial++ {
		loc := locs[rng.Intn(len(locs))]
		ref := base.Add(time.Duration(rng.Int63n(int64(10 * 365 * 24 * time.Hour)))).In(loc)

		var rec domain.Recurrence
		switch rng.Intn(5) {
		case 0:
			rec = domain.Daily{}
		case 1:
			n := rng.Intn(3) + 1
			days := make([]time.Weekday, 0, n)
			for i := 0; i < n; i++ {
				days = append(days, time.Weekday(rng.Intn(7)))
			}
			rec = domain.Weekly{Weekdays: days, IntervalWeeks: rng.Intn(3) + 1}
		case 2:
			rec = domain.MonthlyByDay{Day: rng.Intn(31) + 1, IntervalMonths: rng.Intn(12) + 1}
		case 3:
			rec = domain.MonthlyByWeekday{
				Ordinal:        rng.Intn(4) + 1,
				Weekday:        time.Weekday(rng.Intn(7)),
				IntervalMonths: rng.Intn(6) + 1,
			}
		default:
			rec = domain.LegacyLabel{Days: rng.Intn(365) + 1}
		}

		next := NextOccurrence(rec, ref)
		assert.True(t, next.After(ref), "trial %d: %s from %s gave %s", trial, rec.Describe(), ref, next)
		assert.Equal(t, loc, next.Location(), "trial %d: location", trial)

		switch r := rec.(type) {
		case domain.Weekly:
			assert.Contains(t, r.Weekdays, next.Weekday(), "trial %d: weekday", trial)
			assert.Equal(t, domain.DateOnly(next), next, "trial %d: midnight", trial)
		case domain.MonthlyByDay:
			want := min(r.Day, daysIn(next.Year(), next.Month()))
			assert.Equal(t, want, next.Day(), "trial %d: clamped day", trial)
		case domain.MonthlyByWeekday:
			assert.Equal(t, r.Weekday, next.Weekday(), "trial %d: weekday", trial)
			assert.Equal(t, r.Ordinal, (next.Day()-1)/7+1, "trial %d: ordinal", trial)
		}
	}
}

func TestNextOccurrence_AcrossDSTChanges(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// Spring forward: the calendar day keeps its wall clock time, 23h later.
	ref := time.Date(2025, time.March, 29, 10, 0, 0, 0, madrid)
	next := NextOccurrence(domain.Daily{}, ref)
	assert.Equal(t, time.Date(2025, time.March, 30, 10, 0, 0, 0, madrid), next)
	assert.Equal(t, 23*time.Hour, next.Sub(ref))

	// Fall back: a weekly step spans the extra hour.
	ref = time.Date(2025, time.October, 22, 9, 0, 0, 0, madrid)
	next = NextOccurrence(domain.Weekly{Weekdays: []time.Weekday{time.Wednesday}, IntervalWeeks: 1}, ref)
	assert.Equal(t, time.Date(2025, time.October, 29, 0, 0, 0, 0, madrid), next)

	// Midnight did not exist on 2018-11-04 in Sao Paulo; the occurrence
	// still lands on that Sunday.
	ref = time.Date(2018, time.November, 3, 12, 0, 0, 0, saoPaulo)
	next = NextOccurrence(domain.Weekly{Weekdays: []time.Weekday{time.Sunday}, IntervalWeeks: 1}, ref)
	assert.Equal(t, time.Sunday, next.Weekday())
	assert.Equal(t, 4, next.Day())
	assert.True(t, next.After(ref))

	// A reference on that gap day still yields midnight a week later.
	ref = time.Date(2018, time.November, 4, 15, 0, 0, 0, saoPaulo)
	next = NextOccurrence(domain.Weekly{Weekdays: []time.Weekday{time.Sunday}, IntervalWeeks: 1}, ref)
	assert.Equal(t, time.Date(2018, time.November, 11, 0, 0, 0, 0, saoPaulo), next)
	assert.Equal(t, 0, next.Hour())

	next = NextOccurrence(domain.MonthlyByDay{Day: 4, IntervalMonths: 1}, time.Date(2018, time.October, 20, 8, 0, 0, 0, saoPaulo))
	assert.Equal(t, time.November, next.Month())
	assert.Equal(t, 4, next.Day())
}
