package db

import (
	"context"
	"fmt"
	"regexp"
)

var savepointName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WithinSavepoint runs fn under a named SAVEPOINT on tx. When fn fails its
// writes are rolled back to the savepoint and the enclosing transaction stays
// usable; fn's error is returned unchanged.
func WithinSavepoint(ctx context.Context, tx DBTX, name string, fn func(ctx context.Context) error) error {
	if !savepointName.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("opening savepoint %s: %w", name, err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return fmt.Errorf("rollback to savepoint %s failed: %v (original error: %w)", name, rbErr, err)
		}
		if _, relErr := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); relErr != nil {
			return fmt.Errorf("releasing savepoint %s failed: %v (original error: %w)", name, relErr, err)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("releasing savepoint %s: %w", name, err)
	}
	return nil
}
