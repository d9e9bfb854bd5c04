package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, code, name, status, automatic_generation, asset_id,
	recurrence_kind, day_of_month, week_of_month, weekdays, weekday,
	interval_weeks, interval_months, frequency, frequency_days,
	last_occurrence, next_occurrence, estimated_duration_min, instructions,
	created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.MaintenancePlan) error {
	query := `INSERT INTO maintenance_plans (code, name, status, automatic_generation, asset_id,
		recurrence_kind, day_of_month, week_of_month, weekdays, weekday,
		interval_weeks, interval_months, frequency, frequency_days,
		last_occurrence, next_occurrence, estimated_duration_min, instructions,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	rec := p.Recurrence
	res, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		string(p.Status),
		boolToInt(p.AutomaticGeneration),
		nullableInt64ToValue(p.AssetID),
		rec.Kind,
		nullableIntToValue(rec.DayOfMonth),
		nullableIntToValue(rec.WeekOfMonth),
		joinList(rec.Weekdays),
		rec.Weekday,
		nullableIntToValue(rec.IntervalWeeks),
		nullableIntToValue(rec.IntervalMonths),
		rec.Frequency,
		nullableIntToValue(rec.FrequencyDays),
		nullableTimeToString(p.LastOccurrence),
		nullableTimeToString(p.NextOccurrence),
		p.EstimatedDurationMin,
		p.Instructions,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading plan id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id int64) (*domain.MaintenancePlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM maintenance_plans WHERE id = ?`, id)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) GetByCode(ctx context.Context, code string) (*domain.MaintenancePlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM maintenance_plans WHERE UPPER(code) = UPPER(?)`, code)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) List(ctx context.Context, f PlanFilter) ([]*domain.MaintenancePlan, error) {
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.AssetID != nil {
		where = append(where, "asset_id = ?")
		args = append(args, *f.AssetID)
	}
	query := `SELECT ` + planColumns + ` FROM maintenance_plans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`
	return r.query(ctx, query, args...)
}

func (r *SQLitePlanRepo) ListDue(ctx context.Context, now time.Time, automaticOnly bool) ([]*domain.MaintenancePlan, error) {
	query := `SELECT ` + planColumns + ` FROM maintenance_plans
		WHERE status = ? AND next_occurrence IS NOT NULL AND next_occurrence <= ?`
	args := []any{string(domain.PlanActive), formatTime(now)}
	if automaticOnly {
		query += ` AND automatic_generation = 1`
	}
	query += ` ORDER BY id`
	return r.query(ctx, query, args...)
}

func (r *SQLitePlanRepo) UpdateSchedule(ctx context.Context, p *domain.MaintenancePlan) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE maintenance_plans SET last_occurrence = ?, next_occurrence = ?, updated_at = ? WHERE id = ?`,
		nullableTimeToString(p.LastOccurrence),
		nullableTimeToString(p.NextOccurrence),
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %d: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLitePlanRepo) NextCodeSeq(ctx context.Context, year int) (int, error) {
	prefix := domain.PlanCodePrefix(year)
	rows, err := r.db.QueryContext(ctx, `SELECT code FROM maintenance_plans WHERE code LIKE ?`, prefix+"%")
	if err != nil {
		return 0, fmt.Errorf("listing plan codes: %w", err)
	}
	defer rows.Close()

	maxSeq := 0
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return 0, fmt.Errorf("scanning plan code: %w", err)
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(code, prefix)); err == nil && n > maxSeq {
			maxSeq = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating plan codes: %w", err)
	}
	return maxSeq + 1, nil
}

func (r *SQLitePlanRepo) query(ctx context.Context, query string, args ...any) ([]*domain.MaintenancePlan, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.MaintenancePlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func scanPlan(s rowScanner) (*domain.MaintenancePlan, error) {
	var p domain.MaintenancePlan
	var status, weekdays, createdAt, updatedAt string
	var automatic int
	var assetID, dayOfMonth, weekOfMonth, intervalWeeks, intervalMonths, frequencyDays sql.NullInt64
	var last, next sql.NullString

	err := s.Scan(
		&p.ID, &p.Code, &p.Name, &status, &automatic, &assetID,
		&p.Recurrence.Kind, &dayOfMonth, &weekOfMonth, &weekdays, &p.Recurrence.Weekday,
		&intervalWeeks, &intervalMonths, &p.Recurrence.Frequency, &frequencyDays,
		&last, &next, &p.EstimatedDurationMin, &p.Instructions,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("maintenance plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning maintenance plan: %w", err)
	}

	p.Status = domain.PlanStatus(status)
	p.AutomaticGeneration = intToBool(automatic)
	p.AssetID = nullInt64Ptr(assetID)
	p.Recurrence.DayOfMonth = nullIntPtr(dayOfMonth)
	p.Recurrence.WeekOfMonth = nullIntPtr(weekOfMonth)
	p.Recurrence.Weekdays = splitList(weekdays)
	p.Recurrence.IntervalWeeks = nullIntPtr(intervalWeeks)
	p.Recurrence.IntervalMonths = nullIntPtr(intervalMonths)
	p.Recurrence.FrequencyDays = nullIntPtr(frequencyDays)
	p.LastOccurrence = parseNullableTime(last)
	p.NextOccurrence = parseNullableTime(next)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}
