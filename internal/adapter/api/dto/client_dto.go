package dto

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
)

// ClientRequest representa a requisição de cliente
type ClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ClientSalesResponse traz as vendas de um cliente e o saldo devedor somado
type ClientSalesResponse struct {
	Client      client.Client `json:"client"`
	Sales       []sale.Sale   `json:"sales"`
	Outstanding float64       `json:"outstanding"`
}
