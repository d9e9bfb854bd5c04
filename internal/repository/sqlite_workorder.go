package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

func NewSQLiteWorkOrderRepo(conn db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: conn}
}

const orderColumns = `id, number, type, priority, status, description, observations,
	plan_id, asset_id, technician_id, estimated_duration_min,
	scheduled_date, completed_at, created_at, updated_at`

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, o *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (number, type, priority, status, description, observations,
		plan_id, asset_id, technician_id, estimated_duration_min,
		scheduled_date, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var scheduled any
	if !o.ScheduledDate.IsZero() {
		scheduled = formatTime(o.ScheduledDate)
	}
	res, err := r.db.ExecContext(ctx, query,
		o.Number,
		o.Type,
		o.Priority,
		string(o.Status),
		o.Description,
		o.Observations,
		nullableInt64ToValue(o.PlanID),
		nullableInt64ToValue(o.AssetID),
		nullableInt64ToValue(o.TechnicianID),
		o.EstimatedDurationMin,
		scheduled,
		nullableTimeToString(o.CompletedAt),
		formatTime(o.CreatedAt),
		formatTime(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading work order id: %w", err)
	}
	o.ID = id
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id int64) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM work_orders WHERE id = ?`, id)
	return scanWorkOrder(row)
}

func (r *SQLiteWorkOrderRepo) GetByNumber(ctx context.Context, number string) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM work_orders WHERE UPPER(number) = UPPER(?)`, number)
	return scanWorkOrder(row)
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context, f WorkOrderFilter) ([]*domain.WorkOrder, error) {
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.TechnicianID != nil {
		where = append(where, "technician_id = ?")
		args = append(args, *f.TechnicianID)
	}
	if f.PlanID != nil {
		where = append(where, "plan_id = ?")
		args = append(args, *f.PlanID)
	}
	query := `SELECT ` + orderColumns + ` FROM work_orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	return r.query(ctx, query, args...)
}

func (r *SQLiteWorkOrderRepo) ListOpenPreventive(ctx context.Context, assetID *int64) ([]*domain.WorkOrder, error) {
	args := []any{domain.OrderTypePreventive}
	for _, s := range domain.OpenOrderStatuses {
		args = append(args, string(s))
	}
	args = append(args, nullableInt64ToValue(assetID))

	// IS compares NULL to NULL as equal.
	query := `SELECT ` + orderColumns + ` FROM work_orders
		WHERE type = ? AND status IN (` + placeholders(len(domain.OpenOrderStatuses)) + `) AND asset_id IS ?
		ORDER BY id`
	return r.query(ctx, query, args...)
}

func (r *SQLiteWorkOrderRepo) UpdateStatus(ctx context.Context, o *domain.WorkOrder) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		string(o.Status),
		nullableTimeToString(o.CompletedAt),
		formatTime(o.UpdatedAt),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work order %d: %w", o.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) NextNumber(ctx context.Context) (string, error) {
	var maxID int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM work_orders`).Scan(&maxID); err != nil {
		return "", fmt.Errorf("reading max work order id: %w", err)
	}
	return domain.FormatOrderNumber(maxID + 1), nil
}

func (r *SQLiteWorkOrderRepo) query(ctx context.Context, query string, args ...any) ([]*domain.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		o, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}
	return orders, nil
}

func scanWorkOrder(s rowScanner) (*domain.WorkOrder, error) {
	var o domain.WorkOrder
	var status, createdAt, updatedAt string
	var planID, assetID, technicianID sql.NullInt64
	var scheduled, completed sql.NullString

	err := s.Scan(
		&o.ID, &o.Number, &o.Type, &o.Priority, &status, &o.Description, &o.Observations,
		&planID, &assetID, &technicianID, &o.EstimatedDurationMin,
		&scheduled, &completed, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}

	o.Status = domain.OrderStatus(status)
	o.PlanID = nullInt64Ptr(planID)
	o.AssetID = nullInt64Ptr(assetID)
	o.TechnicianID = nullInt64Ptr(technicianID)
	if t := parseNullableTime(scheduled); t != nil {
		o.ScheduledDate = *t
	}
	o.CompletedAt = parseNullableTime(completed)
	o.CreatedAt = parseTime(createdAt)
	o.UpdatedAt = parseTime(updatedAt)
	return &o, nil
}
