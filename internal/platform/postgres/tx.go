package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// UnitOfWork runs a function inside one database transaction. Stores reach the
// transaction through Conn, so every write issued by fn commits or rolls back together.
type UnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork wraps db. The caller owns the DB lifecycle.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn in a transaction. Nested calls join the outer transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction carried by ctx, or db bound to ctx when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
