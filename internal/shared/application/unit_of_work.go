// Package application holds use-case plumbing shared by the bounded contexts.
package application

import (
	"context"
	"errors"
)

// UnitOfWork scopes a set of writes to one transaction carried in the context.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// WithUnitOfWork runs fn inside a unit of work, rolling back when fn fails.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return uow.Commit(txCtx)
}

// NopUnitOfWork is used with stores that have no transactions, such as the
// in-memory outbox.
type NopUnitOfWork struct{}

func (NopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (NopUnitOfWork) Commit(context.Context) error                       { return nil }
func (NopUnitOfWork) Rollback(context.Context) error                     { return nil }
