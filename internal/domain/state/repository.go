package state

import (
	"context"
	"errors"
	"time"
)

// Chaves do armazenamento local
const (
	KeyData           = "coffeemaster_data"
	KeyStockThreshold = "coffeemaster_stock_threshold"
	KeyMonthlyGoal    = "coffeemaster_monthly_goal"
)

var (
	ErrKeyNotFound          = errors.New("chave não encontrada no armazenamento local")
	ErrSyncDocumentNotFound = errors.New("nenhum dado encontrado para este código de sincronização")
)

// LocalRepository define o armazenamento chave→documento JSON do dispositivo
type LocalRepository interface {
	// Load lê o documento guardado na chave
	Load(ctx context.Context, key string) ([]byte, error)

	// Save grava o documento na chave, substituindo o anterior
	Save(ctx context.Context, key string, data []byte) error

	// Remove apaga a chave. Apagar uma chave inexistente não é erro.
	Remove(ctx context.Context, key string) error
}

// SyncRepository define o armazenamento remoto de um documento por código de sincronização
type SyncRepository interface {
	// Push grava (upsert) o documento completo para o código
	Push(ctx context.Context, syncID string, data []byte, updatedAt time.Time) error

	// Pull lê o documento do código
	Pull(ctx context.Context, syncID string) ([]byte, error)
}
