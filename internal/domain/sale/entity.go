package sale

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart            = errors.New("o carrinho está vazio")
	ErrInvalidQuantity      = errors.New("quantidade deve ser maior que zero")
	ErrNegativePrice        = errors.New("preço aplicado não pode ser negativo")
	ErrNegativeDiscount     = errors.New("desconto não pode ser negativo")
	ErrDiscountOverSubtotal = errors.New("desconto maior que o subtotal")
	ErrNegativeAmountPaid   = errors.New("valor pago não pode ser negativo")
	ErrDebtRequiresClient   = errors.New("é preciso selecionar um cliente para registrar uma dívida")
	ErrInvalidPaymentMethod = errors.New("forma de pagamento inválida")
	ErrInvalidPaymentAmount = errors.New("valor do pagamento deve ser maior que zero")
	ErrNoOutstandingBalance = errors.New("a venda não possui saldo pendente")
	ErrSaleNotFound         = errors.New("venda não encontrada")
)

// WalkInClientName é o nome gravado em vendas sem cliente
const WalkInClientName = "Consumidor Final"

// PaymentMethod representa a forma de pagamento
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentTransfer PaymentMethod = "Transferencia"
)

// ParsePaymentMethod converte um rótulo em PaymentMethod. Vazio vira Efectivo.
func ParsePaymentMethod(label string) (PaymentMethod, error) {
	switch {
	case strings.TrimSpace(label) == "":
		return PaymentCash, nil
	case strings.EqualFold(label, string(PaymentCash)):
		return PaymentCash, nil
	case strings.EqualFold(label, string(PaymentTransfer)):
		return PaymentTransfer, nil
	}
	return "", ErrInvalidPaymentMethod
}

// CartItem é a cópia do produto no momento da venda mais a quantidade e o preço cobrado
type CartItem struct {
	product.Product
	Quantity     domain.Int    `json:"quantity"`
	AppliedPrice domain.Number `json:"appliedPrice"`
}

// LineTotal retorna appliedPrice * quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.AppliedPrice.Float()).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentRecord registra um pagamento feito sobre uma venda
type PaymentRecord struct {
	ID     string        `json:"id"`
	Date   string        `json:"date"`
	Amount domain.Number `json:"amount"`
	Method PaymentMethod `json:"method"`
}

// NewPayment cria um registro de pagamento
func NewPayment(amount float64, method PaymentMethod, now time.Time) (*PaymentRecord, error) {
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}
	if method == "" {
		method = PaymentCash
	}
	return &PaymentRecord{
		ID:     uuid.New().String(),
		Date:   now.UTC().Format(time.RFC3339),
		Amount: domain.Number(amount),
		Method: method,
	}, nil
}

// Sale representa uma venda registrada
type Sale struct {
	ID             string          `json:"id"`
	ClientID       *string         `json:"clientId"`
	ClientName     string          `json:"clientName"`
	Date           string          `json:"date"`
	Items          []CartItem      `json:"items"`
	Subtotal       domain.Number   `json:"subtotal"`
	DiscountAmount domain.Number   `json:"discountAmount"`
	Total          domain.Number   `json:"total"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	AmountPaid     domain.Number   `json:"amountPaid"`
	Balance        domain.Number   `json:"balance"`
	Payments       []PaymentRecord `json:"payments"`
}

// HasClient informa se a venda está associada a um cliente
func (s *Sale) HasClient() bool {
	return s.ClientID != nil && *s.ClientID != ""
}

// ClientKey retorna o id do cliente, ou o nome quando a venda não tem id
func (s *Sale) ClientKey() string {
	if s.HasClient() {
		return *s.ClientID
	}
	return s.ClientName
}

// DayPrefix retorna a parte de data (YYYY-MM-DD) do campo date
func (s *Sale) DayPrefix() string {
	if len(s.Date) < 10 {
		return s.Date
	}
	return s.Date[:10]
}

// ApplyPayment soma o valor a amountPaid, desconta do saldo e anexa o registro.
// Não limita o valor ao saldo pendente.
func (s *Sale) ApplyPayment(p PaymentRecord) {
	s.AmountPaid = domain.Number(decimal.NewFromFloat(s.AmountPaid.Float()).
		Add(decimal.NewFromFloat(p.Amount.Float())).InexactFloat64())
	s.Balance = domain.Number(decimal.NewFromFloat(s.Balance.Float()).
		Sub(decimal.NewFromFloat(p.Amount.Float())).InexactFloat64())
	s.Payments = append(s.Payments, p)
}

// ClampPayment limita um valor ao saldo pendente da venda
func (s *Sale) ClampPayment(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidPaymentAmount
	}
	if s.Balance.Float() <= 0 {
		return 0, ErrNoOutstandingBalance
	}
	if amount > s.Balance.Float() {
		return s.Balance.Float(), nil
	}
	return amount, nil
}

// Clone retorna uma cópia independente da venda
func (s Sale) Clone() Sale {
	if s.ClientID != nil {
		id := *s.ClientID
		s.ClientID = &id
	}
	if s.Items != nil {
		items := make([]CartItem, len(s.Items))
		for i, it := range s.Items {
			it.Product = it.Product.Clone()
			items[i] = it
		}
		s.Items = items
	}
	if s.Payments != nil {
		s.Payments = append(make([]PaymentRecord, 0, len(s.Payments)), s.Payments...)
	}
	return s
}
