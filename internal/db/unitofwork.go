package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrCommit marks a transaction whose callback succeeded but whose commit did
// not. Callers use it to tell "nothing was written" apart from a rejected
// request.
var ErrCommit = errors.New("committing transaction")

// UnitOfWork manages transactional boundaries. The callback receives a DBTX
// backed by a *sql.Tx; callers build tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	return RunTx(ctx, tx, fn)
}

// Tx is the subset of *sql.Tx that RunTx drives.
type Tx interface {
	DBTX
	Commit() error
	Rollback() error
}

// RunTx executes fn against an already-open transaction, rolling back on
// error or panic and committing otherwise. Commit failures wrap ErrCommit.
func RunTx(ctx context.Context, tx Tx, fn func(ctx context.Context, tx DBTX) error) error {
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}
	return nil
}
