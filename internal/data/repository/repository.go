package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repo *Repository) error) error
}

type Repository struct {
	User   UserRepository
	Review ReviewRepository
	Tx     Transactor
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log.With(zap.String("repository", "tx"))}
	return repo
}

func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(q, log),
		Review: NewReviewRepository(q, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	// no-op after a successful commit
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Warn("Failed to roll back transaction", zap.Error(rbErr))
		}
	}()

	repo := newRepository(tx, t.log)
	repo.Tx = nestedTransactor{repo: repo}

	if err := fn(repo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// nestedTransactor joins the enclosing transaction.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTransaction(_ context.Context, fn func(repo *Repository) error) error {
	return fn(n.repo)
}
