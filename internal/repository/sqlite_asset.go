package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/canaleta14-ai/gmao/internal/db"
	"github.com/canaleta14-ai/gmao/internal/domain"
)

// SQLiteAssetRepo implements AssetRepo using a SQLite database.
type SQLiteAssetRepo struct {
	db db.DBTX
}

func NewSQLiteAssetRepo(conn db.DBTX) *SQLiteAssetRepo {
	return &SQLiteAssetRepo{db: conn}
}

const assetColumns = `id, code, name, location, created_at`

func (r *SQLiteAssetRepo) Create(ctx context.Context, a *domain.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (code, name, location, created_at) VALUES (?, ?, ?, ?)`,
		a.Code, a.Name, a.Location, formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting asset: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading asset id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *SQLiteAssetRepo) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	return scanAsset(row)
}

func (r *SQLiteAssetRepo) GetByCode(ctx context.Context, code string) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE UPPER(code) = UPPER(?)`, code)
	return scanAsset(row)
}

func (r *SQLiteAssetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

func scanAsset(s rowScanner) (*domain.Asset, error) {
	var a domain.Asset
	var createdAt string
	if err := s.Scan(&a.ID, &a.Code, &a.Name, &a.Location, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("asset: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning asset: %w", err)
	}
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}
