package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier é o subconjunto de *pgxpool.Pool usado pelo repositório
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSyncRepository implementa state.SyncRepository sobre a tabela coffee_sync
type PostgresSyncRepository struct {
	db querier
}

// NewPostgresSyncRepository cria uma nova instância de PostgresSyncRepository
func NewPostgresSyncRepository(db querier) *PostgresSyncRepository {
	return &PostgresSyncRepository{db: db}
}

var _ state.SyncRepository = (*PostgresSyncRepository)(nil)

// Push implementa state.SyncRepository.Push
func (r *PostgresSyncRepository) Push(ctx context.Context, syncID string, data []byte, updatedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO coffee_sync (id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		syncID, data, updatedAt.UTC())
	if err != nil {
		return fmt.Errorf("erro ao enviar documento de sincronização: %w", err)
	}
	return nil
}

// Pull implementa state.SyncRepository.Pull
func (r *PostgresSyncRepository) Pull(ctx context.Context, syncID string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM coffee_sync WHERE id = $1`, syncID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, state.ErrSyncDocumentNotFound
		}
		return nil, fmt.Errorf("erro ao buscar documento de sincronização: %w", err)
	}
	return data, nil
}
