package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	fallback := &DB{}
	ctx := context.Background()

	assert.Same(t, fallback, GetExecutor(ctx, fallback))
	assert.False(t, IsInTransaction(ctx))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.Same(t, tx, GetExecutor(txCtx, fallback))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("SELECT id FROM bookings"))
	assert.Equal(t, "update", operationName("  UPDATE bookings SET status = $1"))
	assert.Equal(t, "unknown", operationName(""))
}
