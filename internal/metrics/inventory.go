package metrics

import (
	"sort"
	"strings"

	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Ordenações aceitas na listagem de produtos
const (
	SortByName      = "name"
	SortByStockAsc  = "stock_asc"
	SortByStockDesc = "stock_desc"
)

// InventoryValuation resume o valor do estoque atual
type InventoryValuation struct {
	TotalCost       float64
	TotalMarket     float64
	TotalStock      int
	PotentialProfit float64
}

// ValueInventory calcula custo e valor de mercado do estoque (stock * preço)
func ValueInventory(products []product.Product) InventoryValuation {
	cost, market := decimal.Zero, decimal.Zero
	var stock int
	for _, p := range products {
		qty := int(p.Stock)
		cost = cost.Add(times(p.CostPrice.Float(), qty))
		market = market.Add(times(p.SellingPrice.Float(), qty))
		stock += qty
	}
	return InventoryValuation{
		TotalCost:       f64(cost),
		TotalMarket:     f64(market),
		TotalStock:      stock,
		PotentialProfit: f64(market.Sub(cost)),
	}
}

// ProductQuery filtra e ordena a listagem de produtos
type ProductQuery struct {
	Search    string // nome ou categoria, sem diferenciar maiúsculas
	Category  string
	Sort      string
	LowStock  bool
	Threshold int
}

// QueryProducts aplica busca, categoria, estoque baixo e ordenação
func QueryProducts(products []product.Product, q ProductQuery) []product.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(string(p.Category)), search) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(string(p.Category), q.Category) {
			continue
		}
		if q.LowStock && !p.IsLowStock(q.Threshold) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortByStockAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	case SortByStockDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stock > out[j].Stock })
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}
