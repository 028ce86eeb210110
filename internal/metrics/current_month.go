package metrics

import (
	"sort"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/shopspring/decimal"
)

// ChartMonths é a janela do gráfico de vendas
const ChartMonths = 6

// ClientDebt é o saldo pendente agrupado por cliente
type ClientDebt struct {
	Key     string
	Name    string
	Balance float64
	Sales   int
}

// MonthTotal é o total vendido em um mês do gráfico
type MonthTotal struct {
	Month string
	Label string
	Total float64
}

// CurrentMonth são os indicadores do mês corrente
type CurrentMonth struct {
	Month               string
	Revenue             float64
	ItemsSold           int
	TopProductMonth     *ProductRank
	TopProductAllTime   *ProductRank
	OutstandingByClient []ClientDebt
	Goal                float64
	GoalProgress        float64
	Chart               []MonthTotal
}

// BuildCurrentMonth calcula o resumo do mês de now e a meta mensal
func BuildCurrentMonth(st *state.AppState, now time.Time, goal float64) CurrentMonth {
	loc := now.Location()
	month := now.Format("2006-01")
	cm := CurrentMonth{Month: month, Goal: goal}

	chartMonths := trailingMonths(now, ChartMonths)
	chart := make(map[string]decimal.Decimal, len(chartMonths))
	for _, m := range chartMonths {
		chart[m.Format("2006-01")] = decimal.Zero
	}

	revenue := decimal.Zero
	monthly := newRanking()
	allTime := newRanking()
	debts := map[string]*ClientDebt{}
	var debtOrder []string

	for _, s := range st.Sales {
		key, ok := MonthKey(s.Date, loc)

		if ok {
			if total, in := chart[key]; in {
				chart[key] = total.Add(dec(s.Total.Float()))
			}
		}

		for _, it := range s.Items {
			price := it.AppliedPrice.Float()
			if price == 0 {
				price = it.SellingPrice.Float()
			}
			allTime.add(it.ID, it.Name, int(it.Quantity), times(price, int(it.Quantity)))
			if ok && key == month {
				monthly.add(it.ID, it.Name, int(it.Quantity), times(price, int(it.Quantity)))
				cm.ItemsSold += int(it.Quantity)
			}
		}
		if ok && key == month {
			revenue = revenue.Add(dec(s.Total.Float()))
		}

		if s.Balance.Float() > 0 {
			k := s.ClientKey()
			d, found := debts[k]
			if !found {
				d = &ClientDebt{Key: k, Name: s.ClientName}
				debts[k] = d
				debtOrder = append(debtOrder, k)
			}
			d.Balance = f64(dec(d.Balance).Add(dec(s.Balance.Float())))
			d.Sales++
		}
	}

	cm.Revenue = f64(revenue)
	cm.TopProductMonth = monthly.top()
	cm.TopProductAllTime = allTime.top()

	cm.OutstandingByClient = make([]ClientDebt, 0, len(debtOrder))
	for _, k := range debtOrder {
		cm.OutstandingByClient = append(cm.OutstandingByClient, *debts[k])
	}
	sort.SliceStable(cm.OutstandingByClient, func(i, j int) bool {
		return cm.OutstandingByClient[i].Balance > cm.OutstandingByClient[j].Balance
	})

	if goal > 0 {
		cm.GoalProgress = f64(revenue.Div(dec(goal)).Mul(decimal.NewFromInt(100)))
	}

	cm.Chart = make([]MonthTotal, 0, len(chartMonths))
	for _, m := range chartMonths {
		key := m.Format("2006-01")
		cm.Chart = append(cm.Chart, MonthTotal{Month: key, Label: MonthLabel(m), Total: f64(chart[key])})
	}
	return cm
}

type ranking struct {
	byID  map[string]*ProductRank
	order []string
}

func newRanking() *ranking {
	return &ranking{byID: map[string]*ProductRank{}}
}

func (r *ranking) add(id, name string, units int, revenue decimal.Decimal) {
	pr, ok := r.byID[id]
	if !ok {
		pr = &ProductRank{ProductID: id, Name: name}
		r.byID[id] = pr
		r.order = append(r.order, id)
	}
	pr.Units += units
	pr.Revenue = f64(dec(pr.Revenue).Add(revenue))
}

// top retorna o produto com mais unidades, ou nil quando nenhuma unidade foi vendida
func (r *ranking) top() *ProductRank {
	var best *ProductRank
	for _, id := range r.order {
		pr := r.byID[id]
		if best == nil || pr.Units > best.Units {
			best = pr
		}
	}
	if best == nil || best.Units <= 0 {
		return nil
	}
	out := *best
	return &out
}
