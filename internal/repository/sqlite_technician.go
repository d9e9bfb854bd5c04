package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

// SQLiteTechnicianRepo implements TechnicianRepo using a SQLite database.
type SQLiteTechnicianRepo struct {
	db db.DBTX
}

func NewSQLiteTechnicianRepo(conn db.DBTX) *SQLiteTechnicianRepo {
	return &SQLiteTechnicianRepo{db: conn}
}

const technicianColumns = `t.id, t.name, t.email, t.role, t.active, t.created_at`

func (r *SQLiteTechnicianRepo) Create(ctx context.Context, t *domain.Technician) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO technicians (name, email, role, active, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.Name, t.Email, string(t.Role), boolToInt(t.Active), formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting technician: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading technician id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLiteTechnicianRepo) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+technicianColumns+` FROM technicians t WHERE t.id = ?`, id)
	return scanTechnician(row)
}

func (r *SQLiteTechnicianRepo) GetByEmail(ctx context.Context, email string) (*domain.Technician, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+technicianColumns+` FROM technicians t WHERE email <> '' AND LOWER(t.email) = LOWER(?)`, email)
	return scanTechnician(row)
}

func (r *SQLiteTechnicianRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians t WHERE t.active = 1 ORDER BY t.id`
	if includeInactive {
		query = `SELECT ` + technicianColumns + ` FROM technicians t ORDER BY t.id`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}
	defer rows.Close()

	var techs []*domain.Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technicians: %w", err)
	}
	return techs, nil
}

func (r *SQLiteTechnicianRepo) ListEligibleWithLoad(ctx context.Context) ([]domain.TechnicianLoad, error) {
	args := make([]any, 0, len(domain.OpenOrderStatuses)+len(domain.EligibleRoles))
	for _, s := range domain.OpenOrderStatuses {
		args = append(args, string(s))
	}
	for _, role := range domain.EligibleRoles {
		args = append(args, string(role))
	}

	query := `SELECT ` + technicianColumns + `,
			(SELECT COUNT(*) FROM work_orders o
			 WHERE o.technician_id = t.id AND o.status IN (` + placeholders(len(domain.OpenOrderStatuses)) + `)) AS open_orders
		FROM technicians t
		WHERE t.active = 1 AND t.role IN (` + placeholders(len(domain.EligibleRoles)) + `)
		ORDER BY open_orders, t.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing technician workload: %w", err)
	}
	defer rows.Close()

	var loads []domain.TechnicianLoad
	for rows.Next() {
		var l domain.TechnicianLoad
		var role, createdAt string
		var active int
		if err := rows.Scan(&l.Technician.ID, &l.Technician.Name, &l.Technician.Email,
			&role, &active, &createdAt, &l.OpenOrders); err != nil {
			return nil, fmt.Errorf("scanning technician workload: %w", err)
		}
		l.Technician.Role = domain.TechnicianRole(role)
		l.Technician.Active = intToBool(active)
		l.Technician.CreatedAt = parseTime(createdAt)
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technician workload: %w", err)
	}
	return loads, nil
}

func scanTechnician(s rowScanner) (*domain.Technician, error) {
	var t domain.Technician
	var role, createdAt string
	var active int
	if err := s.Scan(&t.ID, &t.Name, &t.Email, &role, &active, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("technician: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning technician: %w", err)
	}
	t.Role = domain.TechnicianRole(role)
	t.Active = intToBool(active)
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
