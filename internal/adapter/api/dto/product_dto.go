package dto

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
)

// ProductRequest representa a requisição de criação ou edição de produto.
// Sem marginPercentage a margem padrão de 30% é usada; sellingPrice informado substitui o preço calculado.
type ProductRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	ImageURL         string   `json:"imageUrl"`
	Category         string   `json:"category"`
	CostPrice        float64  `json:"costPrice"`
	MarginPercentage *float64 `json:"marginPercentage"`
	SellingPrice     *float64 `json:"sellingPrice"`
	Stock            int      `json:"stock"`
}

// Margin retorna a margem informada ou a padrão
func (r ProductRequest) Margin() float64 {
	if r.MarginPercentage == nil {
		return product.DefaultMargin
	}
	return *r.MarginPercentage
}

// PricingRequest altera custo, margem ou preço de venda de um produto
type PricingRequest struct {
	CostPrice        *float64 `json:"costPrice"`
	MarginPercentage *float64 `json:"marginPercentage"`
	SellingPrice     *float64 `json:"sellingPrice"`
}

// ProductListResponse representa a listagem de produtos com o limite de estoque baixo usado
type ProductListResponse struct {
	Items          []product.Product  `json:"items"`
	TotalCount     int                `json:"totalCount"`
	StockThreshold int                `json:"stockThreshold"`
	Categories     []product.Category `json:"categories"`
}
