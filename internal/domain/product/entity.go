package product

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
)

var (
	ErrEmptyName         = errors.New("nome do produto não pode ser vazio")
	ErrNegativeCost      = errors.New("custo não pode ser negativo")
	ErrNegativePrice     = errors.New("preço de venda não pode ser negativo")
	ErrProductNotFound   = errors.New("produto não encontrado")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// Category representa a categoria de um produto
type Category string

const (
	CategoryGrano      Category = "Grano"
	CategoryMolido     Category = "Molido"
	CategoryAccesorios Category = "Accesorios"
	CategoryComida     Category = "Comida"
	CategoryOtros      Category = "Otros"
)

// DefaultMargin é a margem aplicada a produtos novos
const DefaultMargin = 30

// Categories lista as categorias válidas na ordem exibida
func Categories() []Category {
	return []Category{CategoryGrano, CategoryMolido, CategoryAccesorios, CategoryComida, CategoryOtros}
}

// ParseCategory normaliza um rótulo de categoria. Vazio vira Grano e desconhecido vira Otros.
func ParseCategory(label string) Category {
	label = strings.TrimSpace(label)
	if label == "" {
		return CategoryGrano
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), label) {
			return c
		}
	}
	return CategoryOtros
}

// CostHistory registra uma alteração de custo
type CostHistory struct {
	Date    string        `json:"date"`
	OldCost domain.Number `json:"oldCost"`
	NewCost domain.Number `json:"newCost"`
}

// Product representa um produto do inventário
type Product struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	ImageURL         string        `json:"imageUrl"`
	CostPrice        domain.Number `json:"costPrice"`
	MarginPercentage domain.Number `json:"marginPercentage"`
	SellingPrice     domain.Number `json:"sellingPrice"`
	Stock            domain.Int    `json:"stock"`
	Category         Category      `json:"category"`
	History          []CostHistory `json:"history"`
}

// NewProduct cria um novo produto com preço calculado a partir do custo e da margem
func NewProduct(name, description string, category Category, cost, margin float64, stock int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if cost < 0 {
		return nil, ErrNegativeCost
	}

	p := &Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Category:    ParseCategory(string(category)),
		Stock:       domain.Int(stock),
		CostPrice:   domain.Number(cost),
		History:     []CostHistory{},
	}
	p.MarginPercentage = domain.Number(margin)
	p.SellingPrice = domain.Number(CalculatePrice(cost, margin))

	return p, nil
}

// CalculatePrice retorna round(cost * (1 + margin/100)), arredondando meio para cima
func CalculatePrice(cost, margin float64) float64 {
	return math.Floor(cost*(1+margin/100) + 0.5)
}

// ApplyCostOrMargin altera custo e margem e recalcula o preço de venda.
// Uma mudança efetiva de custo fica registrada no histórico.
func (p *Product) ApplyCostOrMargin(cost, margin float64, at time.Time) error {
	if cost < 0 {
		return ErrNegativeCost
	}

	if float64(p.CostPrice) != cost {
		p.History = append(p.History, CostHistory{
			Date:    at.UTC().Format(time.RFC3339),
			OldCost: p.CostPrice,
			NewCost: domain.Number(cost),
		})
	}

	p.CostPrice = domain.Number(cost)
	p.MarginPercentage = domain.Number(margin)
	p.SellingPrice = domain.Number(CalculatePrice(cost, margin))
	return nil
}

// SetSellingPrice define o preço de venda diretamente e zera a margem
func (p *Product) SetSellingPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	p.SellingPrice = domain.Number(price)
	p.MarginPercentage = 0
	return nil
}

// IsLowStock informa se o estoque está no limite ou abaixo dele
func (p *Product) IsLowStock(threshold int) bool {
	return int(p.Stock) <= threshold
}

// Clone retorna uma cópia independente do produto
func (p Product) Clone() Product {
	if p.History != nil {
		p.History = append(make([]CostHistory, 0, len(p.History)), p.History...)
	}
	return p
}
