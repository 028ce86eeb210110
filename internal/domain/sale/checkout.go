package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
	"github.com/shopspring/decimal"
)

// CartLine é uma linha do carrinho antes do fechamento da venda
type CartLine struct {
	Product      product.Product
	Quantity     int
	AppliedPrice *float64 // nil usa o preço de venda do produto
}

// Checkout reúne os dados do fechamento de uma venda
type Checkout struct {
	Lines         []CartLine
	Client        *client.Client
	Discount      float64
	PaymentMethod PaymentMethod
	AmountPaid    *float64 // nil paga o total
	Date          time.Time
}

// NewSale fecha o carrinho e calcula subtotal, total e saldo.
// Uma venda com saldo pendente exige cliente.
func NewSale(c Checkout) (*Sale, error) {
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if c.Discount < 0 {
		return nil, ErrNegativeDiscount
	}

	items := make([]CartItem, 0, len(c.Lines))
	subtotal := decimal.Zero
	for _, line := range c.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		price := line.Product.SellingPrice.Float()
		if line.AppliedPrice != nil {
			price = *line.AppliedPrice
		}
		if price < 0 {
			return nil, ErrNegativePrice
		}

		item := CartItem{
			Product:      line.Product.Clone(),
			Quantity:     domain.Int(line.Quantity),
			AppliedPrice: domain.Number(price),
		}
		subtotal = subtotal.Add(item.LineTotal())
		items = append(items, item)
	}

	discount := decimal.NewFromFloat(c.Discount)
	if discount.GreaterThan(subtotal) {
		return nil, ErrDiscountOverSubtotal
	}
	total := subtotal.Sub(discount)

	paid := total
	if c.AmountPaid != nil {
		if *c.AmountPaid < 0 {
			return nil, ErrNegativeAmountPaid
		}
		paid = decimal.NewFromFloat(*c.AmountPaid)
	}
	balance := total.Sub(paid)

	if balance.IsPositive() && c.Client == nil {
		return nil, ErrDebtRequiresClient
	}

	method := c.PaymentMethod
	if method == "" {
		method = PaymentCash
	}

	date := c.Date
	if date.IsZero() {
		date = time.Now()
	}
	stamp := date.UTC().Format(time.RFC3339)

	s := &Sale{
		ID:             uuid.New().String(),
		ClientName:     WalkInClientName,
		Date:           stamp,
		Items:          items,
		Subtotal:       domain.Number(subtotal.InexactFloat64()),
		DiscountAmount: domain.Number(discount.InexactFloat64()),
		Total:          domain.Number(total.InexactFloat64()),
		PaymentMethod:  method,
		AmountPaid:     domain.Number(paid.InexactFloat64()),
		Balance:        domain.Number(balance.InexactFloat64()),
		Payments:       []PaymentRecord{},
	}

	if c.Client != nil {
		id := c.Client.ID
		s.ClientID = &id
		s.ClientName = c.Client.Name
	}

	if paid.IsPositive() {
		s.Payments = append(s.Payments, PaymentRecord{
			ID:     uuid.New().String(),
			Date:   stamp,
			Amount: domain.Number(paid.InexactFloat64()),
			Method: method,
		})
	}

	return s, nil
}
