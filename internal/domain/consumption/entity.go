package consumption

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
)

// DefaultReason é o motivo gravado quando nenhum é informado
const DefaultReason = "Consumo Propio / Interno"

var (
	ErrInvalidQuantity = errors.New("quantidade do consumo deve ser maior que zero")
	ErrExceedsStock    = errors.New("quantidade maior que o estoque disponível")
)

// Consumption registra uma baixa de estoque que não é venda
type Consumption struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	Quantity    domain.Int `json:"quantity"`
	Date        string     `json:"date"`
	Reason      string     `json:"reason,omitempty"`
}

// NewConsumption cria um consumo interno. A quantidade não pode passar do estoque atual.
func NewConsumption(p product.Product, quantity int, reason string, date time.Time) (*Consumption, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > int(p.Stock) {
		return nil, ErrExceedsStock
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason
	}

	return &Consumption{
		ID:          uuid.New().String(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    domain.Int(quantity),
		Date:        date.UTC().Format(time.RFC3339),
		Reason:      reason,
	}, nil
}
