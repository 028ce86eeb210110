package metrics

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/pkg/advisor"
	"github.com/shopspring/decimal"
)

// summaryTopProducts é quantos nomes de produto entram no resumo do assessor
const summaryTopProducts = 5

// Summarize monta o resumo compacto enviado ao assessor: quantidade de vendas, receita
// total, os primeiros cinco produtos cadastrados e a quantidade de clientes
func Summarize(st *state.AppState) advisor.Summary {
	revenue := decimal.Zero
	for _, s := range st.Sales {
		revenue = revenue.Add(dec(s.Total.Float()))
	}

	top := make([]string, 0, summaryTopProducts)
	for _, p := range st.Products {
		if len(top) == summaryTopProducts {
			break
		}
		top = append(top, p.Name)
	}

	return advisor.Summary{
		TotalSales:   len(st.Sales),
		TotalRevenue: f64(revenue),
		TopProducts:  top,
		ClientCount:  len(st.Clients),
	}
}
