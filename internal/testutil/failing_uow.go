package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/canaleta14-ai/gmao/internal/db"
)

// ExecMatcher decides whether an ExecContext call should fail.
type ExecMatcher func(query string, args []any) bool

// FailingExecUoW is a test UoW that injects Err into every ExecContext call
// the matcher selects. Reads pass through. Because the rest of the
// transaction keeps working, it exercises per-plan savepoint isolation.
type FailingExecUoW struct {
	DB    *sql.DB
	Match ExecMatcher
	Err   error

	failures atomic.Int32
}

// Failures reports how many Exec calls were rejected.
func (u *FailingExecUoW) Failures() int {
	return int(u.failures.Load())
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	return db.RunTx(ctx, &failingExecTx{Tx: tx, uow: u}, fn)
}

type failingExecTx struct {
	*sql.Tx
	uow *FailingExecUoW
}

func (f *failingExecTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match != nil && f.uow.Match(query, args) {
		f.uow.failures.Add(1)
		return nil, f.uow.Err
	}
	return f.Tx.ExecContext(ctx, query, args...)
}

// FailOnNthExecUoW injects Err on the Nth ExecContext call within a
// transaction. Calls are counted starting at 1.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	var count atomic.Int32
	inner := &FailingExecUoW{
		DB:  u.DB,
		Err: u.Err,
		Match: func(string, []any) bool {
			return count.Add(1) == u.FailOn
		},
	}
	return inner.WithinTx(ctx, fn)
}

// FailOnCommitUoW runs the callback normally and then rejects the commit,
// leaving the database untouched.
type FailOnCommitUoW struct {
	DB  *sql.DB
	Err error
}

func (u *FailOnCommitUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	return db.RunTx(ctx, &failCommitTx{Tx: tx, err: u.Err}, fn)
}

type failCommitTx struct {
	*sql.Tx
	err error
}

func (f *failCommitTx) Commit() error {
	return f.err
}

// InsertInto matches INSERT statements against the given table.
func InsertInto(table string) ExecMatcher {
	prefix := "INSERT INTO " + table + " "
	return func(query string, _ []any) bool {
		return strings.HasPrefix(strings.TrimSpace(query), prefix)
	}
}

// ArgEquals wraps m so it only fires when one of the arguments equals v.
func ArgEquals(m ExecMatcher, v any) ExecMatcher {
	return func(query string, args []any) bool {
		if !m(query, args) {
			return false
		}
		for _, a := range args {
			if a == v {
				return true
			}
		}
		return false
	}
}
