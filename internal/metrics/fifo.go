package metrics

import (
	"sort"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/shopspring/decimal"
)

// Fontes de saída de estoque
const (
	OutflowSale        = "sale"
	OutflowConsumption = "consumption"
)

// Lot é um lote de compra com as unidades ainda não consumidas
type Lot struct {
	PurchaseID string
	Date       string
	UnitCost   float64
	Quantity   int
	Remaining  int
}

// Outflow é uma saída de estoque custeada pelos lotes mais antigos
type Outflow struct {
	Source    string
	RefID     string
	Date      string
	Units     int
	Cost      float64
	Unmatched int // unidades sem lote disponível, sem custo atribuído
}

// FIFOReport é a valoração PEPS de um produto contra o histórico de compras
type FIFOReport struct {
	ProductID      string
	Lots           []Lot
	Outflows       []Outflow
	SoldUnits      int
	FIFOCOGS       float64 // custo PEPS das unidades vendidas
	SnapshotCOGS   float64 // custo gravado nos itens das mesmas vendas
	ConsumedUnits  int
	ConsumedCost   float64
	UnmatchedUnits int
	RemainingUnits int
	RemainingCost  float64
}

type fifoEvent struct {
	at       time.Time
	inbound  bool
	lot      int
	source   string
	refID    string
	date     string
	units    int
	snapCost decimal.Decimal
}

// FIFOValuation casa as saídas (itens vendidos e consumos internos) com os lotes de compra
// do produto em ordem cronológica, consumindo sempre o lote mais antigo primeiro.
// Registros com data ilegível ou quantidade não positiva são ignorados; no mesmo instante a
// compra entra antes da saída.
func FIFOValuation(st *state.AppState, productID string) FIFOReport {
	r := FIFOReport{ProductID: productID, Lots: []Lot{}, Outflows: []Outflow{}}
	var events []fifoEvent

	for _, p := range st.Purchases {
		if p.ProductID != productID || p.Quantity <= 0 {
			continue
		}
		t, ok := ParseDate(p.Date)
		if !ok {
			continue
		}
		r.Lots = append(r.Lots, Lot{
			PurchaseID: p.ID,
			Date:       p.Date,
			UnitCost:   p.UnitCost.Float(),
			Quantity:   int(p.Quantity),
			Remaining:  int(p.Quantity),
		})
		events = append(events, fifoEvent{at: t, inbound: true, lot: len(r.Lots) - 1})
	}

	for _, s := range st.Sales {
		t, ok := ParseDate(s.Date)
		if !ok {
			continue
		}
		for _, it := range s.Items {
			if it.ID != productID || it.Quantity <= 0 {
				continue
			}
			events = append(events, fifoEvent{
				at: t, source: OutflowSale, refID: s.ID, date: s.Date, units: int(it.Quantity),
				snapCost: times(it.CostPrice.Float(), int(it.Quantity)),
			})
		}
	}

	for _, c := range st.Consumptions {
		if c.ProductID != productID || c.Quantity <= 0 {
			continue
		}
		t, ok := ParseDate(c.Date)
		if !ok {
			continue
		}
		events = append(events, fifoEvent{at: t, source: OutflowConsumption, refID: c.ID, date: c.Date, units: int(c.Quantity)})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at.Equal(events[j].at) {
			return events[i].inbound && !events[j].inbound
		}
		return events[i].at.Before(events[j].at)
	})

	// lotes em ordem de chegada
	var queue []int
	fifoCOGS, snapCOGS, consumedCost := decimal.Zero, decimal.Zero, decimal.Zero

	for _, ev := range events {
		if ev.inbound {
			queue = append(queue, ev.lot)
			continue
		}

		need := ev.units
		cost := decimal.Zero
		for need > 0 && len(queue) > 0 {
			lot := &r.Lots[queue[0]]
			take := need
			if lot.Remaining < take {
				take = lot.Remaining
			}
			lot.Remaining -= take
			need -= take
			cost = cost.Add(times(lot.UnitCost, take))
			if lot.Remaining <= 0 {
				queue = queue[1:]
			}
		}

		r.Outflows = append(r.Outflows, Outflow{
			Source:    ev.source,
			RefID:     ev.refID,
			Date:      ev.date,
			Units:     ev.units,
			Cost:      f64(cost),
			Unmatched: need,
		})
		r.UnmatchedUnits += need

		switch ev.source {
		case OutflowSale:
			r.SoldUnits += ev.units
			fifoCOGS = fifoCOGS.Add(cost)
			snapCOGS = snapCOGS.Add(ev.snapCost)
		case OutflowConsumption:
			r.ConsumedUnits += ev.units
			consumedCost = consumedCost.Add(cost)
		}
	}

	remainingCost := decimal.Zero
	for _, lot := range r.Lots {
		r.RemainingUnits += lot.Remaining
		remainingCost = remainingCost.Add(times(lot.UnitCost, lot.Remaining))
	}

	r.FIFOCOGS = f64(fifoCOGS)
	r.SnapshotCOGS = f64(snapCOGS)
	r.ConsumedCost = f64(consumedCost)
	r.RemainingCost = f64(remainingCost)
	return r
}
