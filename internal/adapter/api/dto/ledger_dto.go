package dto

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
)

// PurchaseRequest registra uma reposição. Sem unitCost o custo atual do produto é usado.
type PurchaseRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Quantity  int      `json:"quantity"`
	UnitCost  *float64 `json:"unitCost"`
	Date      string   `json:"date"`
}

// ConsumptionRequest registra uma baixa interna de estoque
type ConsumptionRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
}

// PurchaseResponse traz a compra registrada e o produto com o estoque atualizado
type PurchaseResponse struct {
	Purchase purchase.Purchase `json:"purchase"`
	Product  product.Product   `json:"product"`
}

// ConsumptionResponse traz o consumo registrado e o produto com o estoque atualizado
type ConsumptionResponse struct {
	Consumption consumption.Consumption `json:"consumption"`
	Product     product.Product         `json:"product"`
}
