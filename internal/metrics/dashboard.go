package metrics

import (
	"sort"

	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/shopspring/decimal"
)

// PodiumSize é a quantidade de clientes no pódio
const PodiumSize = 3

// ClientRank acumula o total vendido a um nome de cliente
type ClientRank struct {
	ClientName string
	Total      float64
	Sales      int
}

// ProductRank acumula unidades vendidas de um produto
type ProductRank struct {
	ProductID string
	Name      string
	Units     int
	Revenue   float64
}

// Dashboard reúne os indicadores do período filtrado
type Dashboard struct {
	SalesCount  int
	Revenue     float64
	Cost        float64
	Profit      float64
	Units       int
	Outstanding float64
	TopClients  []ClientRank
	Podium      []ClientRank
	TopProducts []ProductRank
	LowStock    []product.Product
}

// Totals soma receita (appliedPrice*qty), custo (custo atual do produto * qty, 0 se o
// produto não existe mais) e unidades dos itens das vendas filtradas
func Totals(st *state.AppState, f Filter) (revenue, cost float64, units int) {
	costs := make(map[string]float64, len(st.Products))
	for _, p := range st.Products {
		if _, seen := costs[p.ID]; !seen {
			costs[p.ID] = p.CostPrice.Float()
		}
	}

	selected := f.selection()
	rev, cst := decimal.Zero, decimal.Zero
	for _, s := range f.Apply(st.Sales) {
		for _, it := range f.items(s, selected) {
			qty := int(it.Quantity)
			rev = rev.Add(times(it.AppliedPrice.Float(), qty))
			cst = cst.Add(times(costs[it.ID], qty))
			units += qty
		}
	}
	return f64(rev), f64(cst), units
}

// BuildDashboard calcula os indicadores do painel para o filtro e o limite de estoque baixo
func BuildDashboard(st *state.AppState, f Filter, stockThreshold int) Dashboard {
	filtered := f.Apply(st.Sales)
	selected := f.selection()

	d := Dashboard{SalesCount: len(filtered)}
	d.Revenue, d.Cost, d.Units = Totals(st, f)
	d.Profit = f64(dec(d.Revenue).Sub(dec(d.Cost)))

	outstanding := decimal.Zero
	clients := map[string]*ClientRank{}
	var clientOrder []string
	products := map[string]*ProductRank{}
	var productOrder []string

	for _, s := range filtered {
		outstanding = outstanding.Add(dec(s.Balance.Float()))

		cr, ok := clients[s.ClientName]
		if !ok {
			cr = &ClientRank{ClientName: s.ClientName}
			clients[s.ClientName] = cr
			clientOrder = append(clientOrder, s.ClientName)
		}
		cr.Total = f64(dec(cr.Total).Add(dec(s.Total.Float())))
		cr.Sales++

		for _, it := range f.items(s, selected) {
			pr, ok := products[it.ID]
			if !ok {
				pr = &ProductRank{ProductID: it.ID, Name: it.Name}
				products[it.ID] = pr
				productOrder = append(productOrder, it.ID)
			}
			pr.Units += int(it.Quantity)
			pr.Revenue = f64(dec(pr.Revenue).Add(it.LineTotal()))
		}
	}
	d.Outstanding = f64(outstanding)

	d.TopClients = make([]ClientRank, 0, len(clientOrder))
	for _, name := range clientOrder {
		d.TopClients = append(d.TopClients, *clients[name])
	}
	sort.SliceStable(d.TopClients, func(i, j int) bool { return d.TopClients[i].Total > d.TopClients[j].Total })
	d.Podium = d.TopClients
	if len(d.Podium) > PodiumSize {
		d.Podium = d.Podium[:PodiumSize]
	}

	d.TopProducts = make([]ProductRank, 0, len(productOrder))
	for _, id := range productOrder {
		d.TopProducts = append(d.TopProducts, *products[id])
	}
	sort.SliceStable(d.TopProducts, func(i, j int) bool { return d.TopProducts[i].Units > d.TopProducts[j].Units })

	d.LowStock = LowStock(st.Products, stockThreshold)
	return d
}

// LowStock retorna os produtos com estoque menor ou igual ao limite
func LowStock(products []product.Product, threshold int) []product.Product {
	out := []product.Product{}
	for _, p := range products {
		if p.IsLowStock(threshold) {
			out = append(out, p)
		}
	}
	return out
}
