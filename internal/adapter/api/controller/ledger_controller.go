package controller

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// LedgerController gerencia as entradas (compras) e baixas internas (consumos) de estoque
type LedgerController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewLedgerController cria uma nova instância de LedgerController
func NewLedgerController(st *store.Store, logger logger.Logger) *LedgerController {
	return &LedgerController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// entryDate usa a data informada (YYYY-MM-DD ou ISO 8601) ou o momento atual
func (c *LedgerController) entryDate(value string) (time.Time, bool) {
	if value == "" {
		return c.now(), true
	}
	return metrics.ParseDate(value)
}

// ListPurchases lista as compras
// @Summary Listar compras
// @Tags inventory
// @Produce json
// @Param product_id query string false "ID do produto"
// @Success 200 {array} purchase.Purchase
// @Router /purchases [get]
func (c *LedgerController) ListPurchases(ctx *gin.Context) {
	productID := ctx.Query("product_id")
	out := make([]purchase.Purchase, 0)
	for _, p := range c.store.Snapshot().Purchases {
		if productID == "" || p.ProductID == productID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	ctx.JSON(http.StatusOK, out)
}

// CreatePurchase registra uma reposição e soma a quantidade ao estoque
// @Summary Registrar compra
// @Tags inventory
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseRequest true "Dados da compra"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /purchases [post]
func (c *LedgerController) CreatePurchase(ctx *gin.Context) {
	var req dto.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, ok := c.store.Product(req.ProductID)
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	date, ok := c.entryDate(req.Date)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", "data inválida"))
		return
	}

	unitCost := p.CostPrice.Float()
	if req.UnitCost != nil {
		unitCost = *req.UnitCost
	}

	pur, err := purchase.NewPurchase(p, req.Quantity, unitCost, date)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar compra", err)
		return
	}

	st, err := c.store.RecordPurchase(ctx, *pur)
	if err != nil {
		respondError(ctx, c.logger, "erro ao salvar compra", err)
		return
	}

	updated, _ := st.FindProduct(p.ID)
	ctx.JSON(http.StatusCreated, dto.PurchaseResponse{Purchase: *pur, Product: updated})
}

// ListConsumptions lista os consumos internos
// @Summary Listar consumos
// @Tags inventory
// @Produce json
// @Param product_id query string false "ID do produto"
// @Success 200 {array} consumption.Consumption
// @Router /consumptions [get]
func (c *LedgerController) ListConsumptions(ctx *gin.Context) {
	productID := ctx.Query("product_id")
	out := make([]consumption.Consumption, 0)
	for _, cons := range c.store.Snapshot().Consumptions {
		if productID == "" || cons.ProductID == productID {
			out = append(out, cons)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	ctx.JSON(http.StatusOK, out)
}

// CreateConsumption registra uma baixa interna e desconta a quantidade do estoque
// @Summary Registrar consumo
// @Description A quantidade não pode passar do estoque atual
// @Tags inventory
// @Accept json
// @Produce json
// @Param consumption body dto.ConsumptionRequest true "Dados do consumo"
// @Success 201 {object} dto.ConsumptionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /consumptions [post]
func (c *LedgerController) CreateConsumption(ctx *gin.Context) {
	var req dto.ConsumptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, ok := c.store.Product(req.ProductID)
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	date, ok := c.entryDate(req.Date)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", "data inválida"))
		return
	}

	cons, err := consumption.NewConsumption(p, req.Quantity, req.Reason, date)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar consumo", err)
		return
	}

	st, err := c.store.RecordConsumption(ctx, *cons)
	if err != nil {
		respondError(ctx, c.logger, "erro ao salvar consumo", err)
		return
	}

	updated, _ := st.FindProduct(p.ID)
	ctx.JSON(http.StatusCreated, dto.ConsumptionResponse{Consumption: *cons, Product: updated})
}
