package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

type RecurrenceKind string

const (
	KindDaily            RecurrenceKind = "daily"
	KindWeekly           RecurrenceKind = "weekly"
	KindMonthlyByDay     RecurrenceKind = "monthly_by_day"
	KindMonthlyByWeekday RecurrenceKind = "monthly_by_weekday"
	KindLegacy           RecurrenceKind = "legacy"
)

// Recurrence is the closed set of supported recurrence configurations.
// Values are produced by ParseRecurrence and are valid by construction.
type Recurrence interface {
	Kind() RecurrenceKind
	Describe() string
	isRecurrence()
}

type Daily struct{}

// Weekly repeats on a set of weekdays. An empty set means "every
// IntervalWeeks weeks counted from the reference instant".
type Weekly struct {
	Weekdays      []time.Weekday
	IntervalWeeks int
}

// MonthlyByDay repeats on a day of the month, clamped to the month length.
type MonthlyByDay struct {
	Day            int
	IntervalMonths int
}

// MonthlyByWeekday repeats on the Ordinal-th Weekday of the month (1st Saturday).
type MonthlyByWeekday struct {
	Ordinal        int
	Weekday        time.Weekday
	IntervalMonths int
}

// LegacyLabel is a fixed day count, used when no structured kind is stored.
type LegacyLabel struct {
	Label string
	Days  int
}

func (Daily) Kind() RecurrenceKind            { return KindDaily }
func (Weekly) Kind() RecurrenceKind           { return KindWeekly }
func (MonthlyByDay) Kind() RecurrenceKind     { return KindMonthlyByDay }
func (MonthlyByWeekday) Kind() RecurrenceKind { return KindMonthlyByWeekday }
func (LegacyLabel) Kind() RecurrenceKind      { return KindLegacy }

func (Daily) isRecurrence()            {}
func (Weekly) isRecurrence()           {}
func (MonthlyByDay) isRecurrence()     {}
func (MonthlyByWeekday) isRecurrence() {}
func (LegacyLabel) isRecurrence()      {}

func (Daily) Describe() string { return "Daily" }

func (w Weekly) Describe() string {
	every := "every week"
	if w.IntervalWeeks > 1 {
		every = fmt.Sprintf("every %d weeks", w.IntervalWeeks)
	}
	if len(w.Weekdays) == 0 {
		return "Weekly, " + every
	}
	names := make([]string, len(w.Weekdays))
	for i, d := range w.Weekdays {
		names[i] = d.String()[:3]
	}
	return fmt.Sprintf("Weekly on %s, %s", strings.Join(names, ", "), every)
}

func (m MonthlyByDay) Describe() string {
	return fmt.Sprintf("Monthly on day %d, %s", m.Day, everyMonths(m.IntervalMonths))
}

func (m MonthlyByWeekday) Describe() string {
	return fmt.Sprintf("Monthly on the %s %s, %s", ordinalName(m.Ordinal), m.Weekday, everyMonths(m.IntervalMonths))
}

func (l LegacyLabel) Describe() string {
	if l.Label == "" {
		return fmt.Sprintf("Every %d days", l.Days)
	}
	return fmt.Sprintf("%s (%d days)", l.Label, l.Days)
}

func everyMonths(n int) string {
	if n <= 1 {
		return "every month"
	}
	return fmt.Sprintf("every %d months", n)
}

func ordinalName(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}

// RecurrenceFields is the persisted, loosely-typed form of a plan's
// recurrence configuration. The legacy Frequency/FrequencyDays pair is kept
// in sync with the structured fields for older readers.
type RecurrenceFields struct {
	Kind           string
	DayOfMonth     *int
	WeekOfMonth    *int
	Weekdays       []string
	Weekday        string
	IntervalWeeks  *int
	IntervalMonths *int
	Frequency      string
	FrequencyDays  *int
}

// legacyDays maps legacy frequency labels to their fixed day counts.
var legacyDays = map[string]int{
	"daily":     1,
	"weekly":    7,
	"biweekly":  15,
	"monthly":   30,
	"quarterly": 90,
	"yearly":    365,
}

// LegacyLabelDays returns the day count for a legacy label (case-insensitive).
func LegacyLabelDays(label string) (int, bool) {
	d, ok := legacyDays[strings.ToLower(strings.TrimSpace(label))]
	return d, ok
}

// ErrNoRecurrence is returned when neither a structured kind nor a usable
// legacy label is stored.
var ErrNoRecurrence = errors.New("no recurrence configured")

// ParseRecurrence validates raw fields once and returns the tagged union.
func ParseRecurrence(f RecurrenceFields) (Recurrence, error) {
	kind := strings.ToLower(strings.TrimSpace(f.Kind))
	switch kind {
	case "":
		return parseLegacy(f)
	case string(KindDaily):
		return Daily{}, nil
	case string(KindWeekly):
		interval, err := positiveOrDefault(f.IntervalWeeks, "interval_weeks")
		if err != nil {
			return nil, err
		}
		days, err := ParseWeekdays(f.Weekdays)
		if err != nil {
			return nil, err
		}
		return Weekly{Weekdays: days, IntervalWeeks: interval}, nil
	case "monthly":
		// Untagged monthly: a stored week-of-month selects the nth-weekday dialect.
		if f.WeekOfMonth != nil {
			return parseMonthlyByWeekday(f)
		}
		return parseMonthlyByDay(f)
	case string(KindMonthlyByDay):
		return parseMonthlyByDay(f)
	case string(KindMonthlyByWeekday):
		return parseMonthlyByWeekday(f)
	case string(KindLegacy):
		return parseLegacy(f)
	}
	return nil, fmt.Errorf("unknown recurrence kind %q", f.Kind)
}

func parseLegacy(f RecurrenceFields) (Recurrence, error) {
	if d, ok := LegacyLabelDays(f.Frequency); ok {
		return LegacyLabel{Label: f.Frequency, Days: d}, nil
	}
	if f.FrequencyDays != nil && *f.FrequencyDays > 0 {
		return LegacyLabel{Label: f.Frequency, Days: *f.FrequencyDays}, nil
	}
	if f.Frequency != "" {
		return nil, fmt.Errorf("unknown frequency label %q", f.Frequency)
	}
	return nil, ErrNoRecurrence
}

func parseMonthlyByDay(f RecurrenceFields) (Recurrence, error) {
	if f.DayOfMonth == nil {
		return nil, fmt.Errorf("monthly recurrence requires day_of_month")
	}
	day := *f.DayOfMonth
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day_of_month %d out of range 1-31", day)
	}
	interval, err := positiveOrDefault(f.IntervalMonths, "interval_months")
	if err != nil {
		return nil, err
	}
	return MonthlyByDay{Day: day, IntervalMonths: interval}, nil
}

func parseMonthlyByWeekday(f RecurrenceFields) (Recurrence, error) {
	if f.WeekOfMonth == nil {
		return nil, fmt.Errorf("monthly-by-weekday recurrence requires week_of_month")
	}
	ord := *f.WeekOfMonth
	if ord < 1 || ord > 4 {
		return nil, fmt.Errorf("week_of_month %d out of range 1-4", ord)
	}
	wd, err := ParseWeekday(f.Weekday)
	if err != nil {
		return nil, err
	}
	interval, err := positiveOrDefault(f.IntervalMonths, "interval_months")
	if err != nil {
		return nil, err
	}
	return MonthlyByWeekday{Ordinal: ord, Weekday: wd, IntervalMonths: interval}, nil
}

func positiveOrDefault(v *int, name string) (int, error) {
	if v == nil {
		return 1, nil
	}
	if *v < 1 {
		return 0, fmt.Errorf("%s must be >= 1, got %d", name, *v)
	}
	return *v, nil
}

var weekdayNames = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// ParseWeekday accepts full or abbreviated English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// ParseWeekdays parses and de-duplicates weekday names, Monday first.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	var out []time.Weekday
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		wd, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return MondayIndex(out[i]) < MondayIndex(out[j]) })
	return out, nil
}

// MondayIndex maps a weekday to 0 (Monday) through 6 (Sunday).
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// IsDailyLike reports whether the fields describe a daily cadence, used to
// pick the fallback interval when the configuration cannot be parsed.
func (f RecurrenceFields) IsDailyLike() bool {
	if strings.EqualFold(strings.TrimSpace(f.Kind), string(KindDaily)) {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(f.Frequency), "daily") {
		return true
	}
	return f.FrequencyDays != nil && *f.FrequencyDays == 1
}

// FieldsFor renders a recurrence back to its persisted form, including the
// legacy label and day count.
func FieldsFor(r Recurrence) RecurrenceFields {
	var f RecurrenceFields
	switch v := r.(type) {
	case Daily:
		f.Kind = string(KindDaily)
		f.Frequency, f.FrequencyDays = "Daily", intPtr(1)
	case Weekly:
		f.Kind = string(KindWeekly)
		for _, d := range v.Weekdays {
			f.Weekdays = append(f.Weekdays, strings.ToLower(d.String()))
		}
		f.IntervalWeeks = intPtr(v.IntervalWeeks)
		f.Frequency, f.FrequencyDays = "Weekly", intPtr(7*v.IntervalWeeks)
	case MonthlyByDay:
		f.Kind = string(KindMonthlyByDay)
		f.DayOfMonth = intPtr(v.Day)
		f.IntervalMonths = intPtr(v.IntervalMonths)
		f.Frequency, f.FrequencyDays = monthlyLegacy(v.IntervalMonths)
	case MonthlyByWeekday:
		f.Kind = string(KindMonthlyByWeekday)
		f.WeekOfMonth = intPtr(v.Ordinal)
		f.Weekday = strings.ToLower(v.Weekday.String())
		f.IntervalMonths = intPtr(v.IntervalMonths)
		f.Frequency, f.FrequencyDays = monthlyLegacy(v.IntervalMonths)
	case LegacyLabel:
		f.Frequency, f.FrequencyDays = v.Label, intPtr(v.Days)
	}
	return f
}

func monthlyLegacy(months int) (string, *int) {
	switch months {
	case 3:
		return "Quarterly", intPtr(90)
	case 12:
		return "Yearly", intPtr(365)
	}
	return "Monthly", intPtr(30 * months)
}

func intPtr(v int) *int { return &v }
