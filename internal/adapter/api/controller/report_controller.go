package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// ReportController expõe os indicadores calculados sobre o estado atual
type ReportController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewReportController cria uma nova instância de ReportController
func NewReportController(st *store.Store, logger logger.Logger) *ReportController {
	return &ReportController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Dashboard retorna os indicadores do período
// @Summary Painel
// @Description Receita, custo, lucro, saldo pendente e rankings do período. Datas em YYYY-MM-DD, inclusivas.
// @Tags reports
// @Produce json
// @Param start query string false "Data inicial"
// @Param end query string false "Data final"
// @Param products query string false "IDs de produto separados por vírgula"
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	filter := metrics.Filter{Start: ctx.Query("start"), End: ctx.Query("end")}
	if raw := ctx.Query("products"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.ProductIDs = append(filter.ProductIDs, id)
			}
		}
	}

	threshold := c.store.Settings(ctx).StockThreshold
	d := metrics.BuildDashboard(c.store.Snapshot(), filter, threshold)
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(d))
}

// CurrentMonth retorna o resumo do mês corrente
// @Summary Mês corrente
// @Tags reports
// @Produce json
// @Success 200 {object} dto.CurrentMonthResponse
// @Router /reports/current-month [get]
func (c *ReportController) CurrentMonth(ctx *gin.Context) {
	goal := c.store.Settings(ctx).MonthlyGoal
	cm := metrics.BuildCurrentMonth(c.store.Snapshot(), c.now(), goal)
	ctx.JSON(http.StatusOK, dto.ToCurrentMonthResponse(cm))
}

// IncomeStatement retorna o estado de resultados mensal
// @Summary Estado de resultados
// @Tags reports
// @Produce json
// @Success 200 {object} dto.IncomeStatementResponse
// @Router /reports/income-statement [get]
func (c *ReportController) IncomeStatement(ctx *gin.Context) {
	is := metrics.BuildIncomeStatement(c.store.Snapshot().Sales, c.now().Location())
	ctx.JSON(http.StatusOK, dto.ToIncomeStatementResponse(is))
}

// ProductHistory retorna os últimos 12 meses de um produto
// @Summary Histórico do produto
// @Description Usa o custo gravado em cada item vendido e lista as compras do produto
// @Tags reports
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/products/{id}/history [get]
func (c *ReportController) ProductHistory(ctx *gin.Context) {
	st := c.store.Snapshot()
	p, ok := st.FindProduct(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	h := metrics.BuildProductHistory(st, p.ID, c.now())
	ctx.JSON(http.StatusOK, dto.ToProductHistoryResponse(p, h))
}

// FIFO retorna a valoração PEPS do produto contra as compras registradas
// @Summary Valoração PEPS
// @Tags reports
// @Produce json
// @Param productId path string true "ID do produto"
// @Success 200 {object} dto.FIFOResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/fifo/{productId} [get]
func (c *ReportController) FIFO(ctx *gin.Context) {
	st := c.store.Snapshot()
	p, ok := st.FindProduct(ctx.Param("productId"))
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFIFOResponse(metrics.FIFOValuation(st, p.ID)))
}

// Inventory retorna o valor do estoque atual
// @Summary Valor do estoque
// @Tags reports
// @Produce json
// @Success 200 {object} dto.InventoryResponse
// @Router /reports/inventory [get]
func (c *ReportController) Inventory(ctx *gin.Context) {
	products := c.store.Snapshot().Products
	threshold := c.store.Settings(ctx).StockThreshold
	v := metrics.ValueInventory(products)

	ctx.JSON(http.StatusOK, dto.InventoryResponse{
		TotalCost:       v.TotalCost,
		TotalMarket:     v.TotalMarket,
		TotalStock:      v.TotalStock,
		PotentialProfit: v.PotentialProfit,
		LowStock:        metrics.LowStock(products, threshold),
		StockThreshold:  threshold,
	})
}
