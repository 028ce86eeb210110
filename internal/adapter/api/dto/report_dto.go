package dto

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
)

// ClientRankResponse representa um cliente no ranking do painel
type ClientRankResponse struct {
	ClientName string  `json:"clientName"`
	Total      float64 `json:"total"`
	Sales      int     `json:"sales"`
}

// ProductRankResponse representa um produto no ranking de vendas
type ProductRankResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// DashboardResponse representa os indicadores do painel
type DashboardResponse struct {
	SalesCount  int                   `json:"salesCount"`
	Revenue     float64               `json:"revenue"`
	Cost        float64               `json:"cost"`
	Profit      float64               `json:"profit"`
	Units       int                   `json:"units"`
	Outstanding float64               `json:"outstanding"`
	TopClients  []ClientRankResponse  `json:"topClients"`
	Podium      []ClientRankResponse  `json:"podium"`
	TopProducts []ProductRankResponse `json:"topProducts"`
	LowStock    []product.Product     `json:"lowStock"`
}

func toClientRanks(in []metrics.ClientRank) []ClientRankResponse {
	out := make([]ClientRankResponse, 0, len(in))
	for _, r := range in {
		out = append(out, ClientRankResponse{ClientName: r.ClientName, Total: r.Total, Sales: r.Sales})
	}
	return out
}

func toProductRank(r metrics.ProductRank) ProductRankResponse {
	return ProductRankResponse{ProductID: r.ProductID, Name: r.Name, Units: r.Units, Revenue: r.Revenue}
}

// ToDashboardResponse converte metrics.Dashboard em DashboardResponse
func ToDashboardResponse(d metrics.Dashboard) DashboardResponse {
	products := make([]ProductRankResponse, 0, len(d.TopProducts))
	for _, p := range d.TopProducts {
		products = append(products, toProductRank(p))
	}
	return DashboardResponse{
		SalesCount:  d.SalesCount,
		Revenue:     d.Revenue,
		Cost:        d.Cost,
		Profit:      d.Profit,
		Units:       d.Units,
		Outstanding: d.Outstanding,
		TopClients:  toClientRanks(d.TopClients),
		Podium:      toClientRanks(d.Podium),
		TopProducts: products,
		LowStock:    d.LowStock,
	}
}

// ClientDebtResponse representa o saldo devedor de um cliente
type ClientDebtResponse struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Sales   int     `json:"sales"`
}

// MonthTotalResponse é um ponto do gráfico mensal
type MonthTotalResponse struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// CurrentMonthResponse representa os indicadores do mês corrente
type CurrentMonthResponse struct {
	Month               string               `json:"month"`
	Revenue             float64              `json:"revenue"`
	ItemsSold           int                  `json:"itemsSold"`
	TopProductMonth     *ProductRankResponse `json:"topProductMonth"`
	TopProductAllTime   *ProductRankResponse `json:"topProductAllTime"`
	OutstandingByClient []ClientDebtResponse `json:"outstandingByClient"`
	Goal                float64              `json:"goal"`
	GoalProgress        float64              `json:"goalProgress"`
	Chart               []MonthTotalResponse `json:"chart"`
}

// ToCurrentMonthResponse converte metrics.CurrentMonth em CurrentMonthResponse
func ToCurrentMonthResponse(cm metrics.CurrentMonth) CurrentMonthResponse {
	resp := CurrentMonthResponse{
		Month:               cm.Month,
		Revenue:             cm.Revenue,
		ItemsSold:           cm.ItemsSold,
		Goal:                cm.Goal,
		GoalProgress:        cm.GoalProgress,
		OutstandingByClient: make([]ClientDebtResponse, 0, len(cm.OutstandingByClient)),
		Chart:               make([]MonthTotalResponse, 0, len(cm.Chart)),
	}
	if cm.TopProductMonth != nil {
		r := toProductRank(*cm.TopProductMonth)
		resp.TopProductMonth = &r
	}
	if cm.TopProductAllTime != nil {
		r := toProductRank(*cm.TopProductAllTime)
		resp.TopProductAllTime = &r
	}
	for _, d := range cm.OutstandingByClient {
		resp.OutstandingByClient = append(resp.OutstandingByClient, ClientDebtResponse(d))
	}
	for _, m := range cm.Chart {
		resp.Chart = append(resp.Chart, MonthTotalResponse(m))
	}
	return resp
}

// IncomeRowResponse é uma linha do estado de resultados
type IncomeRowResponse struct {
	Month       string  `json:"month,omitempty"`
	Billed      float64 `json:"billed"`
	Discounts   float64 `json:"discounts"`
	COGS        float64 `json:"cogs"`
	Profit      float64 `json:"profit"`
	Pending     float64 `json:"pending"`
	Collected   float64 `json:"collected"`
	Margin      float64 `json:"margin"`
	ItemsSold   int     `json:"itemsSold"`
	TicketCount int     `json:"ticketCount"`
}

// IncomeStatementResponse representa o estado de resultados mensal
type IncomeStatementResponse struct {
	Rows   []IncomeRowResponse `json:"rows"`
	Totals IncomeRowResponse   `json:"totals"`
}

// ToIncomeStatementResponse converte metrics.IncomeStatement em IncomeStatementResponse
func ToIncomeStatementResponse(is metrics.IncomeStatement) IncomeStatementResponse {
	rows := make([]IncomeRowResponse, 0, len(is.Rows))
	for _, r := range is.Rows {
		rows = append(rows, IncomeRowResponse(r))
	}
	return IncomeStatementResponse{Rows: rows, Totals: IncomeRowResponse(is.Totals)}
}

// MonthStatResponse acumula as vendas de um produto em um mês
type MonthStatResponse struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
	COGS    float64 `json:"cogs"`
	Profit  float64 `json:"profit"`
}

// HistoryStatsResponse resume o histórico de um produto
type HistoryStatsResponse struct {
	TotalUnits   int               `json:"totalUnits"`
	TotalRevenue float64           `json:"totalRevenue"`
	TotalProfit  float64           `json:"totalProfit"`
	AvgMargin    float64           `json:"avgMargin"`
	BestMonth    MonthStatResponse `json:"bestMonth"`
}

// ProductHistoryResponse representa os últimos doze meses de um produto
type ProductHistoryResponse struct {
	Product   product.Product      `json:"product"`
	Months    []MonthStatResponse  `json:"months"`
	Stats     HistoryStatsResponse `json:"stats"`
	Purchases []purchase.Purchase  `json:"purchases"`
}

// ToProductHistoryResponse converte metrics.ProductHistory em ProductHistoryResponse
func ToProductHistoryResponse(p product.Product, h metrics.ProductHistory) ProductHistoryResponse {
	months := make([]MonthStatResponse, 0, len(h.Months))
	for _, m := range h.Months {
		months = append(months, MonthStatResponse(m))
	}
	return ProductHistoryResponse{
		Product: p,
		Months:  months,
		Stats: HistoryStatsResponse{
			TotalUnits:   h.Stats.TotalUnits,
			TotalRevenue: h.Stats.TotalRevenue,
			TotalProfit:  h.Stats.TotalProfit,
			AvgMargin:    h.Stats.AvgMargin,
			BestMonth:    MonthStatResponse(h.Stats.BestMonth),
		},
		Purchases: h.Purchases,
	}
}

// LotResponse é um lote de compra na valoração PEPS
type LotResponse struct {
	PurchaseID string  `json:"purchaseId"`
	Date       string  `json:"date"`
	UnitCost   float64 `json:"unitCost"`
	Quantity   int     `json:"quantity"`
	Remaining  int     `json:"remaining"`
}

// OutflowResponse é uma saída de estoque custeada pelos lotes
type OutflowResponse struct {
	Source    string  `json:"source"`
	RefID     string  `json:"refId"`
	Date      string  `json:"date"`
	Units     int     `json:"units"`
	Cost      float64 `json:"cost"`
	Unmatched int     `json:"unmatched"`
}

// FIFOResponse representa a valoração PEPS de um produto
type FIFOResponse struct {
	ProductID      string            `json:"productId"`
	Lots           []LotResponse     `json:"lots"`
	Outflows       []OutflowResponse `json:"outflows"`
	SoldUnits      int               `json:"soldUnits"`
	FIFOCOGS       float64           `json:"fifoCogs"`
	SnapshotCOGS   float64           `json:"snapshotCogs"`
	ConsumedUnits  int               `json:"consumedUnits"`
	ConsumedCost   float64           `json:"consumedCost"`
	UnmatchedUnits int               `json:"unmatchedUnits"`
	RemainingUnits int               `json:"remainingUnits"`
	RemainingCost  float64           `json:"remainingCost"`
}

// ToFIFOResponse converte metrics.FIFOReport em FIFOResponse
func ToFIFOResponse(r metrics.FIFOReport) FIFOResponse {
	lots := make([]LotResponse, 0, len(r.Lots))
	for _, l := range r.Lots {
		lots = append(lots, LotResponse(l))
	}
	outflows := make([]OutflowResponse, 0, len(r.Outflows))
	for _, o := range r.Outflows {
		outflows = append(outflows, OutflowResponse(o))
	}
	return FIFOResponse{
		ProductID:      r.ProductID,
		Lots:           lots,
		Outflows:       outflows,
		SoldUnits:      r.SoldUnits,
		FIFOCOGS:       r.FIFOCOGS,
		SnapshotCOGS:   r.SnapshotCOGS,
		ConsumedUnits:  r.ConsumedUnits,
		ConsumedCost:   r.ConsumedCost,
		UnmatchedUnits: r.UnmatchedUnits,
		RemainingUnits: r.RemainingUnits,
		RemainingCost:  r.RemainingCost,
	}
}

// InventoryResponse representa o valor do estoque atual
type InventoryResponse struct {
	TotalCost       float64           `json:"totalCost"`
	TotalMarket     float64           `json:"totalMarket"`
	TotalStock      int               `json:"totalStock"`
	PotentialProfit float64           `json:"potentialProfit"`
	LowStock        []product.Product `json:"lowStock"`
	StockThreshold  int               `json:"stockThreshold"`
}
