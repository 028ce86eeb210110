package metrics

import (
	"sort"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// IncomeRow é uma linha mensal do estado de resultados
type IncomeRow struct {
	Month       string
	Billed      float64
	Discounts   float64
	COGS        float64
	Profit      float64
	Pending     float64
	Collected   float64
	Margin      float64
	ItemsSold   int
	TicketCount int
}

// IncomeStatement contém as linhas mensais em ordem crescente e o total geral
type IncomeStatement struct {
	Rows   []IncomeRow
	Totals IncomeRow
}

type incomeAcc struct {
	billed, discounts, cogs, pending decimal.Decimal
	items, tickets                   int
}

func (a *incomeAcc) row(month string) IncomeRow {
	net := a.billed.Sub(a.discounts)
	profit := net.Sub(a.cogs)

	margin := 0.0
	if !net.IsZero() {
		margin = f64(profit.Div(net).Mul(decimal.NewFromInt(100)))
	}

	return IncomeRow{
		Month:       month,
		Billed:      f64(a.billed),
		Discounts:   f64(a.discounts),
		COGS:        f64(a.cogs),
		Profit:      f64(profit),
		Pending:     f64(a.pending),
		Collected:   f64(net.Sub(a.pending)),
		Margin:      margin,
		ItemsSold:   a.items,
		TicketCount: a.tickets,
	}
}

func (a *incomeAcc) add(o *incomeAcc) {
	a.billed = a.billed.Add(o.billed)
	a.discounts = a.discounts.Add(o.discounts)
	a.cogs = a.cogs.Add(o.cogs)
	a.pending = a.pending.Add(o.pending)
	a.items += o.items
	a.tickets += o.tickets
}

// BuildIncomeStatement agrupa as vendas por YYYY-MM (no fuso loc). O faturado é o subtotal,
// ou total + desconto em registros antigos sem subtotal; o CMV usa o custo gravado em cada item.
// Vendas com data ilegível ficam de fora.
func BuildIncomeStatement(sales []sale.Sale, loc *time.Location) IncomeStatement {
	months := map[string]*incomeAcc{}

	for _, s := range sales {
		key, ok := MonthKey(s.Date, loc)
		if !ok {
			continue
		}
		acc, ok := months[key]
		if !ok {
			acc = &incomeAcc{}
			months[key] = acc
		}

		billed := dec(s.Subtotal.Float())
		if billed.IsZero() {
			billed = dec(s.Total.Float()).Add(dec(s.DiscountAmount.Float()))
		}
		acc.billed = acc.billed.Add(billed)
		acc.discounts = acc.discounts.Add(dec(s.DiscountAmount.Float()))
		acc.pending = acc.pending.Add(dec(s.Balance.Float()))
		acc.tickets++

		for _, it := range s.Items {
			qty := int(it.Quantity)
			acc.cogs = acc.cogs.Add(times(it.CostPrice.Float(), qty))
			acc.items += qty
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := IncomeStatement{Rows: make([]IncomeRow, 0, len(keys))}
	total := &incomeAcc{}
	for _, k := range keys {
		out.Rows = append(out.Rows, months[k].row(k))
		total.add(months[k])
	}
	out.Totals = total.row("")
	return out
}
