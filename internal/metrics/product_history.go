package metrics

import (
	"sort"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/shopspring/decimal"
)

// HistoryMonths é a janela do histórico por produto
const HistoryMonths = 12

// MonthStat acumula as vendas de um produto em um mês
type MonthStat struct {
	Month   string // YYYY-MM
	Label   string
	Units   int
	Revenue float64
	COGS    float64
	Profit  float64
}

// HistoryStats resume a janela do histórico
type HistoryStats struct {
	TotalUnits   int
	TotalRevenue float64
	TotalProfit  float64
	AvgMargin    float64
	BestMonth    MonthStat
}

// ProductHistory é o histórico mensal de um produto com suas compras
type ProductHistory struct {
	ProductID string
	Months    []MonthStat
	Stats     HistoryStats
	Purchases []purchase.Purchase
}

// BuildProductHistory monta os últimos 12 meses do produto a partir do primeiro item
// correspondente de cada venda, usando o custo gravado no item. As compras do produto
// vêm da mais nova para a mais antiga.
func BuildProductHistory(st *state.AppState, productID string, now time.Time) ProductHistory {
	loc := now.Location()
	scaffold := trailingMonths(now, HistoryMonths)

	type acc struct {
		units         int
		revenue, cogs decimal.Decimal
	}
	index := make(map[string]*acc, len(scaffold))
	for _, m := range scaffold {
		index[m.Format("2006-01")] = &acc{}
	}

	for _, s := range st.Sales {
		key, ok := MonthKey(s.Date, loc)
		if !ok {
			continue
		}
		a, ok := index[key]
		if !ok {
			continue
		}
		for _, it := range s.Items {
			if it.ID != productID {
				continue
			}
			price := it.AppliedPrice.Float()
			if price == 0 {
				price = it.SellingPrice.Float()
			}
			qty := int(it.Quantity)
			a.units += qty
			a.revenue = a.revenue.Add(times(price, qty))
			a.cogs = a.cogs.Add(times(it.CostPrice.Float(), qty))
			break
		}
	}

	h := ProductHistory{ProductID: productID, Months: make([]MonthStat, 0, len(scaffold))}
	totalRevenue, totalProfit := decimal.Zero, decimal.Zero
	for _, m := range scaffold {
		key := m.Format("2006-01")
		a := index[key]
		profit := a.revenue.Sub(a.cogs)
		stat := MonthStat{
			Month:   key,
			Label:   MonthLabel(m),
			Units:   a.units,
			Revenue: f64(a.revenue),
			COGS:    f64(a.cogs),
			Profit:  f64(profit),
		}
		h.Months = append(h.Months, stat)

		h.Stats.TotalUnits += a.units
		totalRevenue = totalRevenue.Add(a.revenue)
		totalProfit = totalProfit.Add(profit)
		if len(h.Months) == 1 || stat.Units > h.Stats.BestMonth.Units {
			h.Stats.BestMonth = stat
		}
	}
	h.Stats.TotalRevenue = f64(totalRevenue)
	h.Stats.TotalProfit = f64(totalProfit)
	if totalRevenue.IsPositive() {
		h.Stats.AvgMargin = f64(totalProfit.Div(totalRevenue).Mul(decimal.NewFromInt(100)))
	}

	h.Purchases = []purchase.Purchase{}
	for _, p := range st.Purchases {
		if p.ProductID == productID {
			h.Purchases = append(h.Purchases, p)
		}
	}
	sort.SliceStable(h.Purchases, func(i, j int) bool {
		ti, _ := ParseDate(h.Purchases[i].Date)
		tj, _ := ParseDate(h.Purchases[j].Date)
		return ti.After(tj)
	})

	return h
}
