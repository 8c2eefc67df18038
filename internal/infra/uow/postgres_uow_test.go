//go:build unit

package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"reservebook/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx embeds pgx.Tx so only the methods the unit of work calls need bodies.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakePool struct {
	TxBeginner
	txs     []*fakeTx
	options []pgx.TxOptions
}

func (p *fakePool) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	p.txs = append(p.txs, tx)
	p.options = append(p.options, opts)
	return tx, nil
}

func TestWithin_CommitsOnSuccess(t *testing.T) {
	pool := &fakePool{}
	u := NewPostgresUoW(pool, nil, nil)

	err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
		assert.NotNil(t, tx.Reservations())
		assert.Same(t, tx.Reservations(), tx.Reservations())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, pool.txs, 1)
	assert.True(t, pool.txs[0].committed)
	assert.Equal(t, pgx.ReadCommitted, pool.options[0].IsoLevel)
}

func TestWithin_RollsBackOnError(t *testing.T) {
	pool := &fakePool{}
	u := NewPostgresUoW(pool, nil, nil)
	boom := errors.New("boom")

	err := u.Within(context.Background(), func(context.Context, shared.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	require.Len(t, pool.txs, 1, "non-retryable errors are not retried")
	assert.True(t, pool.txs[0].rolledBack)
}

func TestWithin_RetriesSerializationFailure(t *testing.T) {
	pool := &fakePool{}
	u := NewPostgresUoW(pool, nil, nil)

	calls := 0
	err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: pgErrCodeSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, pool.txs, 2)
	assert.True(t, pool.txs[0].rolledBack)
	assert.True(t, pool.txs[1].committed)
}

func TestWithin_StopsOnContextCancel(t *testing.T) {
	pool := &fakePool{}
	u := NewPostgresUoW(pool, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := u.Within(ctx, func(context.Context, shared.Tx) error {
		return &pgconn.PgError{Code: pgErrCodeDeadlockDetected}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		base := time.Duration(1<<attempt) * backoffBase
		got := calculateBackoff(attempt, backoffBase)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/5+time.Nanosecond)
	}
}
