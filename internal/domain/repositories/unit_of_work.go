package repositories

import (
	"context"
)

// UnitOfWork runs repository calls in one transaction
type UnitOfWork interface {
	// Do executes the given function within a transaction scope
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
