package controller

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// SaleController gerencia o caixa: fechamento de vendas, pagamentos e estornos
type SaleController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(st *store.Store, logger logger.Logger) *SaleController {
	return &SaleController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// List lista as vendas
// @Summary Listar vendas
// @Description Lista as vendas da mais nova para a mais antiga, com filtro de período (YYYY-MM-DD) e cliente
// @Tags sales
// @Produce json
// @Param start query string false "Data inicial"
// @Param end query string false "Data final"
// @Param client_id query string false "ID do cliente"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página (0 = todos)"
// @Success 200 {object} dto.ListResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "0"))
	pagination := dto.GetPagination(page, pageSize)
	clientID := ctx.Query("client_id")

	filter := metrics.Filter{Start: ctx.Query("start"), End: ctx.Query("end")}
	sales := filter.Apply(c.store.Snapshot().Sales)
	if clientID != "" {
		kept := sales[:0]
		for _, s := range sales {
			if s.ClientID != nil && *s.ClientID == clientID {
				kept = append(kept, s)
			}
		}
		sales = kept
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date > sales[j].Date })

	start, end := pagination.Bounds(len(sales))
	ctx.JSON(http.StatusOK, dto.NewListResponse(sales[start:end], len(sales), pagination))
}

// Checkout fecha uma venda
// @Summary Fechar venda
// @Description Registra a venda, baixa o estoque e soma o total ao cliente. Venda com saldo exige cliente.
// @Tags sales
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutRequest true "Carrinho e pagamento"
// @Success 201 {object} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	method, err := sale.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		respondError(ctx, c.logger, "forma de pagamento inválida", err)
		return
	}

	st := c.store.Snapshot()
	checkout := sale.Checkout{
		Lines:         make([]sale.CartLine, 0, len(req.Items)),
		Discount:      req.Discount,
		PaymentMethod: method,
		AmountPaid:    req.AmountPaid,
		Date:          c.now(),
	}

	for _, line := range req.Items {
		p, ok := st.FindProduct(line.ProductID)
		if !ok {
			respondError(ctx, c.logger, "produto do carrinho não encontrado", product.ErrProductNotFound)
			return
		}
		checkout.Lines = append(checkout.Lines, sale.CartLine{
			Product:      p,
			Quantity:     line.Quantity,
			AppliedPrice: line.AppliedPrice,
		})
	}

	if id := strings.TrimSpace(req.ClientID); id != "" {
		cl, ok := st.FindClient(id)
		if !ok {
			respondError(ctx, c.logger, "cliente não encontrado", client.ErrClientNotFound)
			return
		}
		checkout.Client = &cl
	}

	s, err := sale.NewSale(checkout)
	if err != nil {
		respondError(ctx, c.logger, "erro ao fechar venda", err)
		return
	}

	if _, err := c.store.AddSale(ctx, *s); err != nil {
		respondError(ctx, c.logger, "erro ao salvar venda", err)
		return
	}

	c.logger.Info("venda registrada", "sale_id", s.ID, "total", s.Total.Float(), "balance", s.Balance.Float())
	ctx.JSON(http.StatusCreated, s)
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} sale.Sale
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, ok := c.store.Sale(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "venda não encontrada", sale.ErrSaleNotFound)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// Delete remove apenas o registro da venda
// @Summary Remover venda
// @Description Remove o registro da venda sem devolver estoque nem descontar o total do cliente
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.store.Sale(id); !ok {
		respondError(ctx, c.logger, "venda não encontrada", sale.ErrSaleNotFound)
		return
	}

	if _, err := c.store.DeleteSale(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda removida com sucesso", nil))
}

// Revert estorna uma venda
// @Summary Estornar venda
// @Description Remove a venda devolvendo o estoque dos itens e descontando o total do cliente
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id}/revert [post]
func (c *SaleController) Revert(ctx *gin.Context) {
	if _, err := c.store.RevertSale(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao estornar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda estornada com sucesso", nil))
}

// AddPayment registra um pagamento em uma venda com saldo
// @Summary Registrar pagamento
// @Description Registra um pagamento limitado ao saldo pendente da venda
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "ID da venda"
// @Param payment body dto.PaymentRequest true "Valor e forma de pagamento"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id}/payments [post]
func (c *SaleController) AddPayment(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.store.Sale(id); !ok {
		respondError(ctx, c.logger, "venda não encontrada", sale.ErrSaleNotFound)
		return
	}

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	method, err := sale.ParsePaymentMethod(req.Method)
	if err != nil {
		respondError(ctx, c.logger, "forma de pagamento inválida", err)
		return
	}

	st, amount, err := c.store.RegisterPayment(ctx, id, req.Amount, method)
	if err != nil {
		respondError(ctx, c.logger, "pagamento não aceito", err)
		return
	}

	updated, _ := st.FindSale(id)
	ctx.JSON(http.StatusOK, dto.PaymentResponse{Sale: updated, Applied: amount})
}
