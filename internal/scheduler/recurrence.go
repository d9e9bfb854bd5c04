package scheduler

import (
	"sort"
	"time"

	"github.com/canaleta14-ai/gmao/internal/domain"
)

// Fallback intervals applied when a plan's recurrence cannot be parsed.
const (
	FallbackDailyDays   = 1
	FallbackDefaultDays = 7
)

// NextOccurrence returns the next occurrence of rec strictly after ref.
// A zero ref means now. Weekly and monthly results are at midnight in ref's
// location; daily and legacy results keep ref's time of day.
func NextOccurrence(rec domain.Recurrence, ref time.Time) time.Time {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	switch r := rec.(type) {
	case domain.Daily:
		return ref.AddDate(0, 0, 1)
	case domain.Weekly:
		return nextWeekly(r, ref)
	case domain.MonthlyByDay:
		return nextMonthlyByDay(r, ref)
	case domain.MonthlyByWeekday:
		return nextMonthlyByWeekday(r, ref)
	case domain.LegacyLabel:
		return ref.AddDate(0, 0, max(r.Days, 1))
	}
	return ref.AddDate(0, 0, FallbackDefaultDays)
}

// Advancement is the outcome of advancing a plan's schedule from raw fields.
type Advancement struct {
	Next       time.Time
	Recurrence domain.Recurrence
	Fallback   bool
	Reason     string
}

// Advance parses the stored fields and computes the next occurrence. It never
// fails: malformed or missing configuration advances by FallbackDailyDays
// when the fields look daily, FallbackDefaultDays otherwise.
func Advance(f domain.RecurrenceFields, ref time.Time) Advancement {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	rec, err := domain.ParseRecurrence(f)
	if err != nil {
		days := FallbackDefaultDays
		if f.IsDailyLike() {
			days = FallbackDailyDays
		}
		return Advancement{
			Next:     ref.AddDate(0, 0, days),
			Fallback: true,
			Reason:   err.Error(),
		}
	}
	return Advancement{Next: NextOccurrence(rec, ref), Recurrence: rec}
}

// Occurrences lists the next n occurrences after ref, each computed from the
// previous one.
func Occurrences(rec domain.Recurrence, ref time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	cur := ref
	for i := 0; i < n; i++ {
		cur = NextOccurrence(rec, cur)
		out = append(out, cur)
	}
	return out
}

func nextWeekly(r domain.Weekly, ref time.Time) time.Time {
	interval := max(r.IntervalWeeks, 1)
	if len(r.Weekdays) == 0 {
		return ref.AddDate(0, 0, 7*interval)
	}

	targets := make([]int, len(r.Weekdays))
	for i, d := range r.Weekdays {
		targets[i] = domain.MondayIndex(d)
	}
	sort.Ints(targets)

	current := domain.MondayIndex(ref.Weekday())

	// Later this week; today never counts.
	for _, t := range targets {
		if t > current {
			return midnightAfter(ref, t-current)
		}
	}

	days := (7 - current) + targets[0]
	if interval > 1 {
		days += (interval - 1) * 7
	}
	return midnightAfter(ref, days)
}

// midnightAfter is local midnight days calendar days after ref's date. It is
// built from the date, not by adding to ref's midnight, so a DST gap at
// midnight on ref's day does not shift later results.
func midnightAfter(ref time.Time, days int) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, ref.Location())
}

func nextMonthlyByDay(r domain.MonthlyByDay, ref time.Time) time.Time {
	interval := max(r.IntervalMonths, 1)
	y, m, _ := ref.Date()

	candidate := clampedDate(y, m, r.Day, ref.Location())
	if candidate.After(domain.DateOnly(ref)) {
		return candidate
	}
	y, m = addMonths(y, m, interval)
	return clampedDate(y, m, r.Day, ref.Location())
}

func nextMonthlyByWeekday(r domain.MonthlyByWeekday, ref time.Time) time.Time {
	interval := max(r.IntervalMonths, 1)
	loc := ref.Location()
	y, m, _ := ref.Date()

	candidate, ok := nthWeekday(y, m, r.Ordinal, r.Weekday, loc)
	if ok && candidate.After(domain.DateOnly(ref)) {
		return candidate
	}

	y, m = addMonths(y, m, interval)
	if candidate, ok = nthWeekday(y, m, r.Ordinal, r.Weekday, loc); ok {
		return candidate
	}
	// Best-effort recovery when the ordinal spills past the month: one week
	// earlier, then the first occurrence.
	if r.Ordinal > 1 {
		if candidate, ok = nthWeekday(y, m, r.Ordinal-1, r.Weekday, loc); ok {
			return candidate
		}
	}
	candidate, _ = nthWeekday(y, m, 1, r.Weekday, loc)
	return candidate
}

// nthWeekday returns the ordinal-th weekday of the month and false when it
// spills into the following month.
func nthWeekday(y int, m time.Month, ordinal int, wd time.Weekday, loc *time.Location) (time.Time, bool) {
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	d := time.Date(y, m, 1+offset+(ordinal-1)*7, 0, 0, 0, 0, loc)
	return d, d.Month() == m
}

func clampedDate(y int, m time.Month, day int, loc *time.Location) time.Time {
	if last := daysIn(y, m); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func addMonths(y int, m time.Month, n int) (int, time.Month) {
	total := int(m) - 1 + n
	return y + total/12, time.Month(total%12 + 1)
}
