package purchase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantidade da compra deve ser maior que zero")
	ErrNegativeCost    = errors.New("custo unitário não pode ser negativo")
)

// Purchase registra uma entrada de mercadoria (reposição de estoque)
type Purchase struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	ProductID   string        `json:"productId"`
	ProductName string        `json:"productName"`
	Quantity    domain.Int    `json:"quantity"`
	UnitCost    domain.Number `json:"unitCost"`
	TotalCost   domain.Number `json:"totalCost"`
}

// NewPurchase cria uma compra para o produto, com totalCost = quantity * unitCost
func NewPurchase(p product.Product, quantity int, unitCost float64, date time.Time) (*Purchase, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitCost < 0 {
		return nil, ErrNegativeCost
	}

	total := decimal.NewFromFloat(unitCost).Mul(decimal.NewFromInt(int64(quantity)))

	return &Purchase{
		ID:          uuid.New().String(),
		Date:        date.UTC().Format(time.RFC3339),
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    domain.Int(quantity),
		UnitCost:    domain.Number(unitCost),
		TotalCost:   domain.Number(total.InexactFloat64()),
	}, nil
}
