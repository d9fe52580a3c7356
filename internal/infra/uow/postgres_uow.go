package uow

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/repository"
	"salon-scheduler/internal/usecase/commands"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUoW runs appointment mutations inside a single transaction.
type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) *PostgresUoW {
	return &PostgresUoW{pool: pool}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, repo commands.AppointmentRepository) error) error {
	return u.run(ctx, nil, fn)
}

// WithinDateLock takes pg_advisory_xact_lock keyed by the booking date before
// running fn. Writers for the same date are serialized, so a conflict check
// and the insert it guards see a stable view of that day. The lock is
// released automatically at commit or rollback.
func (u *PostgresUoW) WithinDateLock(ctx context.Context, date time.Time, fn func(ctx context.Context, repo commands.AppointmentRepository) error) error {
	key := dateLockKey(date)
	return u.run(ctx, &key, fn)
}

func (u *PostgresUoW) run(ctx context.Context, lockKey *int64, fn func(ctx context.Context, repo commands.AppointmentRepository) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if lockKey != nil {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, *lockKey); err != nil {
			return infra.WrapRepoErr("failed to acquire date lock", err)
		}
	}

	if err := fn(ctx, repository.NewAppointmentRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

const dateLockNamespace int64 = 0x53414C4F4E << 16 // distinguishes these locks from other advisory users

func dateLockKey(date time.Time) int64 {
	y, m, d := date.Date()
	return dateLockNamespace | int64(y*10000+int(m)*100+d)
}
