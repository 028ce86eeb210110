package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
)

// DefaultStockThreshold é o limite de estoque baixo quando nenhum foi salvo
const DefaultStockThreshold = 10

// ErrInvalidSettings indica valores de configuração negativos
var ErrInvalidSettings = errors.New("configurações inválidas: valores não podem ser negativos")

// Settings guarda as preferências salvas fora do documento principal.
// Não participam da sincronização nem da trava de gravação.
type Settings struct {
	StockThreshold int
	MonthlyGoal    float64
}

// Settings lê as preferências do armazenamento local, usando os padrões quando ausentes
func (s *Store) Settings(ctx context.Context) Settings {
	out := Settings{StockThreshold: DefaultStockThreshold}

	if v, ok := s.loadNumber(ctx, state.KeyStockThreshold); ok {
		out.StockThreshold = int(v)
	}
	if v, ok := s.loadNumber(ctx, state.KeyMonthlyGoal); ok {
		out.MonthlyGoal = v
	}
	return out
}

// SaveSettings grava as preferências no armazenamento local
func (s *Store) SaveSettings(ctx context.Context, in Settings) (Settings, error) {
	if in.StockThreshold < 0 || in.MonthlyGoal < 0 {
		return Settings{}, ErrInvalidSettings
	}

	if err := s.saveNumber(ctx, state.KeyStockThreshold, float64(in.StockThreshold)); err != nil {
		return Settings{}, err
	}
	if err := s.saveNumber(ctx, state.KeyMonthlyGoal, in.MonthlyGoal); err != nil {
		return Settings{}, err
	}

	s.logger.Info("configurações salvas", "stock_threshold", in.StockThreshold, "monthly_goal", in.MonthlyGoal)
	return in, nil
}

func (s *Store) loadNumber(ctx context.Context, key string) (float64, bool) {
	data, err := s.local.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, state.ErrKeyNotFound) {
			s.logger.Warn("erro ao ler configuração local", "key", key, "error", err)
		}
		return 0, false
	}

	var n domain.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, false
	}
	return n.Float(), true
}

func (s *Store) saveNumber(ctx context.Context, key string, v float64) error {
	data, err := json.Marshal(domain.Number(v))
	if err != nil {
		return fmt.Errorf("erro ao serializar configuração %s: %w", key, err)
	}
	if err := s.local.Save(ctx, key, data); err != nil {
		return fmt.Errorf("erro ao gravar configuração %s: %w", key, err)
	}
	return nil
}
