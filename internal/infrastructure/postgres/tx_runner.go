package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

var _ repository.UserTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool   *pgxpool.Pool
	hasher *password.Hasher
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, hasher *password.Hasher) *TxRunner {
	return &TxRunner{pool: pool, hasher: hasher}
}

// RunUserTx inicia una transacción, ejecuta fn con un repositorio de usuarios
// atado a la tx y hace Commit o Rollback según el resultado.
func (r *TxRunner) RunUserTx(ctx context.Context, fn func(users repository.UserRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx, r.hasher)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
