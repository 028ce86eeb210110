package dto

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
)

// CartLineRequest é uma linha do carrinho
type CartLineRequest struct {
	ProductID    string   `json:"productId" binding:"required"`
	Quantity     int      `json:"quantity"`
	AppliedPrice *float64 `json:"appliedPrice"`
}

// CheckoutRequest representa o fechamento de uma venda
type CheckoutRequest struct {
	Items         []CartLineRequest `json:"items"`
	ClientID      string            `json:"clientId"`
	Discount      float64           `json:"discount"`
	PaymentMethod string            `json:"paymentMethod"`
	AmountPaid    *float64          `json:"amountPaid"`
}

// PaymentRequest registra um pagamento em uma venda com saldo
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
}

// PaymentResponse traz a venda atualizada e o valor efetivamente aplicado
type PaymentResponse struct {
	Sale    sale.Sale `json:"sale"`
	Applied float64   `json:"applied"`
}
