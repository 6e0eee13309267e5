package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/Excommunicode/ShareHub/internal/platform/database"
)

type txKey struct{}

type commitHooksKey struct{}

// commitHooks collects side effects that must only be seen once the transaction is durable.
type commitHooks struct {
	fns []func()
}

func (h *commitHooks) run() {
	for _, fn := range h.fns {
		fn()
	}
	h.fns = nil
}

// withCommitHooks returns ctx carrying a hook list, reusing one already on ctx.
func withCommitHooks(ctx context.Context) (context.Context, *commitHooks) {
	if h, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		return ctx, h
	}
	h := &commitHooks{}
	return context.WithValue(ctx, commitHooksKey{}, h), h
}

// afterCommit defers fn until the transaction on ctx commits. Outside a transaction fn runs
// immediately. Hooks of a rolled back transaction are dropped.
func afterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		h.fns = append(h.fns, fn)
		return
	}
	fn()
}

// inTransaction reports whether ctx carries an open transaction.
func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

// GormTransactor runs use cases inside one REPEATABLE READ transaction. Repositories built
// on the same *gorm.DB join it through the context.
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor creates a new GormTransactor.
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise. Nested calls reuse
// the outer transaction. Hooks registered with afterCommit run once the outer commit succeeds.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}
	hooksCtx, hooks := withCommitHooks(ctx)
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(hooksCtx, txKey{}, tx))
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return database.TranslateError(err)
	}
	hooks.run()
	return nil
}

// conn returns the transaction bound to ctx, or db scoped to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
